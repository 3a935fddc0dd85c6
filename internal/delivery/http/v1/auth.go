package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeremyakd/todo-challenge/internal/services"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req registerRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(detailInvalidBody))
		return
	}

	result, err := h.auth.Register(c, services.RegisterParams{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to register user")
		switch {
		case errors.Is(err, services.ErrMissingCredentials):
			abort(c, newBadRequestError(detailMissingCredentials))
		case errors.Is(err, services.ErrUserAlreadyExists):
			abort(c, newBadRequestError(detailUserExists))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, tokenResponse{Token: result.Token})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(detailInvalidBody))
		return
	}

	result, err := h.auth.Login(c, services.LoginParams{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to login")
		switch {
		case errors.Is(err, services.ErrMissingCredentials):
			abort(c, newBadRequestError(detailMissingCredentials))
		case errors.Is(err, services.ErrInvalidCredentials):
			abort(c, newUnauthorizedError(detailInvalidCredentials))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: result.Token})
}

// HandleLogout inspects the Authorization header itself instead of using
// the shared middleware: a request with no header at all is a successful
// no-op, while a present-but-invalid token is rejected.
func (h *handlerImpl) HandleLogout(c *gin.Context) {
	if c.GetHeader(authHeader) == "" {
		c.Status(http.StatusNoContent)
		return
	}

	token, ok := tokenFromHeader(c)
	if !ok {
		h.logger.Warn().Msg("invalid authorization header")
		abort(c, newUnauthorizedError(detailInvalidToken))
		return
	}

	user, err := h.auth.ResolveToken(c, token)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to resolve token")
		abort(c, newUnauthorizedError(detailInvalidToken))
		return
	}

	err = h.auth.Logout(c, user.ID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to logout")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.Status(http.StatusNoContent)
}
