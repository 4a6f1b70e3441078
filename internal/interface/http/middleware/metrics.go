package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/pkg/metrics"
)

// Metrics HTTP请求指标
// path标签使用路由模板（/api/v1/books/:isbn），避免ISBN撑爆标签基数
func Metrics() gin.HandlerFunc {
	metrics.InitMetrics()
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsInProgress.Inc()
		start := time.Now()
		c.Next()
		metrics.HTTPRequestsInProgress.Dec()

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
