package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/commutelog/commute-backend/internal/utils"
)

// RequestLogger logs every request with latency, status and device information.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		device := utils.ParseUserAgent(c.Request.UserAgent())

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         utils.ClientIP(c),
			"latency_ms": latency.Milliseconds(),
			"device":     device.DeviceType,
			"platform":   device.Platform,
			"browser":    device.Browser,
		}

		// Token contents stay out of the logs, only presence is recorded
		fields["has_auth"] = c.GetHeader("Authorization") != ""

		if userCtx, exists := GetUserContext(c); exists {
			fields["user_id"] = userCtx.UserID.String()
		}

		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.WithFields(fields).Error("Request completed")
		case c.Writer.Status() >= 400:
			logger.WithFields(fields).Warn("Request completed")
		default:
			logger.WithFields(fields).Info("Request completed")
		}
	}
}
