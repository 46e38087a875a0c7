package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/gearstore/pkg/logger"
)

// AccessLog 访问日志中间件（结构化输出）
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("request_id", GetRequestID(c)),
		}

		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
			logger.L().Error("请求处理异常", fields...)
			return
		}

		if c.Writer.Status() >= 500 {
			logger.L().Error("请求失败", fields...)
		} else {
			logger.L().Info("请求完成", fields...)
		}
	}
}
