package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "property-alerts/internal/transport/http/response"
)

// MaxBodyBytes 声明长度超限直接拒绝；未声明长度时读取超过 n 字节会让绑定失败
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeBadRequest, "request body too large"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
