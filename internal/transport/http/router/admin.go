package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"property-alerts/internal/core/auth"
	"property-alerts/internal/transport/http/handler"
	mdw "property-alerts/internal/transport/http/middleware"
)

func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, adminH *handler.AdminHandler, mods ...AdminModule) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.Recovery(l),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(100),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	// 登录无需鉴权
	admin := r.Group("/admin/v1")
	adminH.MountLogin(admin)

	// 其余接口统一要求 admin 角色
	protected := admin.Group("")
	protected.Use(mdw.AuthJWT(jwter, auth.RoleAdmin))
	MountAdmin(protected, append([]AdminModule{adminH}, mods...)...)

	return r
}
