package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/islandexpress/bus-booking-backend/internal/utils"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs every request with latency and client device info
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		device := utils.ParseUserAgent(c.Request.UserAgent())

		logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"latency_ms":  time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
			"device_type": device.DeviceType,
			"browser":     device.Browser,
			"os":          device.OS,
		}).Info("Request handled")
	}
}
