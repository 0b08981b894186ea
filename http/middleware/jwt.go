package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-drive/config"
	"github.com/tnqbao/gau-drive/utils"
)

func AuthMiddleware(config *config.EnvConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := utils.ExtractToken(c)

		if tokenStr == "" {
			tokenStr = c.Query("access_token")
		}

		if tokenStr == "" {
			utils.JSON401(c, "Authorization token is required")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenStr, config)
		if err != nil {
			utils.JSON401(c, "Invalid or expired token")
			c.Abort()
			return
		}

		if err := utils.InjectClaimsToContext(c, claims); err != nil {
			utils.JSON401(c, "Invalid token claims")
			c.Abort()
			return
		}

		c.Next()
	}
}
