package v1

import "github.com/gin-gonic/gin"

// RegisterRoutes wires every endpoint. Each operation gets its own named
// handler; the owner-scoping happens once in the auth middleware and is
// passed down as an explicit identity, never read from ambient state.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router.GET("/health", h.HandleHealth)

	authRouter := router.Group("/auth")
	authRouter.POST("/register", h.HandleRegister)
	authRouter.POST("/login", h.HandleLogin)
	authRouter.POST("/logout", h.HandleLogout)

	taskRouter := router.Group("/tasks", h.HandleAuthMiddleware)
	taskRouter.GET("", h.HandleListTasks)
	taskRouter.POST("", h.HandleCreateTask)
	taskRouter.GET("/:id", h.HandleGetTask)
	taskRouter.PUT("/:id", h.HandleReplaceTask)
	taskRouter.PATCH("/:id", h.HandleUpdateTask)
	taskRouter.DELETE("/:id", h.HandleDeleteTask)
}
