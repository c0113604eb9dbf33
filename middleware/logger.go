package middleware

import (
	"time"

	"clinichub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", getClientIP(c)),
		}
		if id := c.GetString(CtxUserID); id != "" {
			fields = append(fields, zap.String("userID", id))
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			utils.GetLogger().Error("Request", fields...)
		case status >= 400:
			utils.GetLogger().Warn("Request", fields...)
		default:
			utils.GetLogger().Info("Request", fields...)
		}
	}
}
