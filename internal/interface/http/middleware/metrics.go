package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/gearstore/pkg/metrics"
)

// Metrics HTTP请求指标中间件
// 说明：path使用路由模板（/api/v1/orders/:order_no）而非真实URL，
// 避免订单号等高基数值把指标维度打爆
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		if metrics.HTTPRequestsInProgress != nil {
			metrics.HTTPRequestsInProgress.Inc()
			defer metrics.HTTPRequestsInProgress.Dec()
		}

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched" // 404等未命中路由的请求
		}

		metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		})

		if metrics.HTTPRequestDuration != nil {
			metrics.HTTPRequestDuration.With(map[string]string{
				"method": c.Request.Method,
				"path":   path,
			}).Observe(time.Since(start).Seconds())
		}
	}
}
