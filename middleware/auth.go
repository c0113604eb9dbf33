package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"clinichub/models"
	"clinichub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by JWTAuth.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
)

// Authenticator resolves a bearer token to the calling actor.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Actor, error)
}

// JWTAuth requires a valid bearer token and stores the caller in the context.
func JWTAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.AbortWithError(c, http.StatusUnauthorized, "Not authorized, login again")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, "Not authorized, login again")
			return
		}

		actor, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, models.ErrUnauthorized) {
				utils.AbortWithError(c, http.StatusUnauthorized, "Not authorized, login again")
				return
			}
			utils.GetLogger().Error("JWTAuth: authentication failed", zap.Error(err))
			utils.AbortWithError(c, http.StatusServiceUnavailable, utils.GenericErrorMessage)
			return
		}

		c.Set(CtxUserID, actor.ID)
		c.Set(CtxRole, actor.Role)
		c.Next()
	}
}

// GetActor returns the caller stored by JWTAuth.
func GetActor(c *gin.Context) (models.Actor, bool) {
	id := c.GetString(CtxUserID)
	if id == "" {
		return models.Actor{}, false
	}
	role, _ := c.Get(CtxRole)
	r, _ := role.(models.Role)
	return models.Actor{ID: id, Role: r}, true
}
