package middleware

import (
	"time"

	"github.com/NomadCrew/trcs2-health/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request. Probe traffic is frequent, so
// successful requests are logged at debug and failures at warn.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := logger.GetLogger()
		status := c.Writer.Status()
		fields := []interface{}{
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}

		if status >= 400 {
			log.Warnw("Request failed", fields...)
			return
		}
		log.Debugw("Request handled", fields...)
	}
}
