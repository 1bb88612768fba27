package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"property-alerts/internal/core/auth"
	resp "property-alerts/internal/transport/http/response"
)

func bearer(c *gin.Context) (string, bool) {
	scheme, tok, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || tok == "" {
		return "", false
	}
	return strings.TrimSpace(tok), true
}

// AuthJWT 管理端鉴权；role 为空只要求 token 有效
func AuthJWT(j *auth.JWTer, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := bearer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if role != "" && claims.Role != role {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(auth.CtxClaims, claims)
		c.Set(auth.CtxSubject, claims.Subject)
		c.Set(auth.CtxRole, claims.Role)
		c.Next()
	}
}
