package middleware

import (
	"net/http"

	"clinichub/models"
	"clinichub/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only for the given roles. It must run after JWTAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			utils.AbortWithError(c, http.StatusUnauthorized, "Not authorized, login again")
			return
		}
		if !allowed[actor.Role] {
			utils.AbortWithError(c, http.StatusForbidden, "You do not have access to this resource")
			return
		}
		c.Next()
	}
}
