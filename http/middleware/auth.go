package middlewares

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tranvu/cinesync/config"
	"github.com/tranvu/cinesync/utils"
)

// AuthMiddleware verifies the signed token and requires the given role
// before letting the request through.
func AuthMiddleware(cfg *config.EnvConfig, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := utils.ExtractToken(c)
		if tokenStr == "" {
			utils.JSON401(c, "Authorization token is required")
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(cfg.JWT.SecretKey, tokenStr)
		if err != nil {
			utils.JSON401(c, "Invalid or expired token")
			c.Abort()
			return
		}

		if err := utils.RequireRole(claims, requiredRole); err != nil {
			if errors.Is(err, utils.ErrForbidden) {
				utils.JSON403(c, "Forbidden")
			} else {
				utils.JSON401(c, "Invalid token")
			}
			c.Abort()
			return
		}

		c.Set("role", claims.Role)
		c.Next()
	}
}
