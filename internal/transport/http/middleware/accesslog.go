package middleware

import (
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sensitiveQuery = map[string]bool{
	"password": true, "token": true, "access_token": true, "secret": true,
}

func maskQuery(q url.Values) string {
	for k := range q {
		if sensitiveQuery[strings.ToLower(k)] {
			q.Set(k, "****")
		}
	}
	return q.Encode()
}

// AccessLog 管理端访问日志；5xx 记 error，4xx 或处理方报错记 warn，健康检查与指标不记
func AccessLog(l *zap.Logger) gin.HandlerFunc {
	l = l.Named("access")
	return func(c *gin.Context) {
		switch c.Request.URL.Path {
		case "/health", "/metrics":
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		lvl := zapcore.InfoLevel
		switch {
		case status >= 500:
			lvl = zapcore.ErrorLevel
		case status >= 400:
			lvl = zapcore.WarnLevel
		}
		fields := []zap.Field{
			zap.String("rid", c.GetString(KeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.Int("size", c.Writer.Size()),
		}
		if q := c.Request.URL.Query(); len(q) > 0 {
			fields = append(fields, zap.String("query", maskQuery(q)))
		}
		if len(c.Errors) > 0 {
			lvl = max(lvl, zapcore.WarnLevel)
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if ce := l.Check(lvl, "HTTP"); ce != nil {
			ce.Write(fields...)
		}
	}
}
