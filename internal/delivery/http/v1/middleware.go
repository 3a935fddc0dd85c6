package v1

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDCtxKey = "user_id"

const (
	authHeader  = "Authorization"
	tokenScheme = "Token"
)

// HandleAuthMiddleware resolves the bearer token carried as
// "Authorization: Token <value>" to a user identity exactly once per
// request and stores the user id in the request context.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
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

	c.Set(userIDCtxKey, user.ID)
	c.Next()
}

func tokenFromHeader(c *gin.Context) (string, bool) {
	header := c.GetHeader(authHeader)
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != tokenScheme || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func userIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(userIDCtxKey)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok
}
