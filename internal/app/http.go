package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/jeremyakd/todo-challenge/internal/config"
	"github.com/jeremyakd/todo-challenge/internal/delivery/http/v1"
	"github.com/jeremyakd/todo-challenge/internal/services"
	"github.com/jeremyakd/todo-challenge/internal/storage"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	if httpCfg.RateLimitRPS > 0 {
		// The sweep goroutine lives as long as the server does.
		limiterCtx, limiterCancel := context.WithCancel(context.Background())
		defer limiterCancel()
		router.Use(v1.RateLimitMiddleware(limiterCtx, globalLogger,
			httpCfg.RateLimitRPS, httpCfg.RateLimitBurst))
	}
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	userStorage := storage.NewPGUserStorage(globalPostgresPool)
	tokenStorage := storage.NewPGTokenStorage(globalPostgresPool)
	taskStorage := storage.NewPGTaskStorage(globalPostgresPool)

	authService := services.NewAuthService(globalLogger, userStorage, tokenStorage)
	taskService := services.NewTaskService(globalLogger, taskStorage)

	handler := v1.New(globalLogger, authService, taskService)
	v1.RegisterRoutes(router, handler)
}
