package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"property-alerts/internal/core/auth"
	"property-alerts/internal/domain"
	"property-alerts/internal/service"
	"property-alerts/internal/transport/http/ez"
	"property-alerts/pkg/utils"
)

// AdminCredentials 单一管理员账号，密码以 bcrypt 哈希配置
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

type AdminHandler struct {
	listings *service.ListingService
	alerts   *service.AlertService
	users    domain.UserDirectory
	jwter    *auth.JWTer
	creds    AdminCredentials
}

func NewAdminHandler(l *service.ListingService, a *service.AlertService, u domain.UserDirectory, j *auth.JWTer, creds AdminCredentials) *AdminHandler {
	return &AdminHandler{listings: l, alerts: a, users: u, jwter: j, creds: creds}
}

type loginIn struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginOut struct {
	Token string `json:"token"`
}

// MountLogin 公共分组，无需登录
func (h *AdminHandler) MountLogin(admin *gin.RouterGroup) {
	ez.Register(ez.New(admin), ez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			if h.creds.PasswordHash == "" || in.Username != h.creds.Username || !utils.CheckPassword(in.Password, h.creds.PasswordHash) {
				return loginOut{}, ez.Unauthorized("invalid credentials")
			}
			tok, err := h.jwter.Issue(in.Username, auth.RoleAdmin)
			if err != nil {
				return loginOut{}, ez.Internal("issue token failed", err)
			}
			return loginOut{Token: tok}, nil
		},
	})
}

type listingsOut struct {
	Total int              `json:"total"`
	Items []domain.Listing `json:"items"`
}

type alertsOut struct {
	Total int            `json:"total"`
	Items []domain.Alert `json:"items"`
}

// MountAdmin 分组已走 AuthJWT("admin")
func (h *AdminHandler) MountAdmin(admin *gin.RouterGroup) {
	e := ez.New(admin)

	ez.Register(e, ez.Action[struct{}, listingsOut]{
		Method: http.MethodGet,
		Path:   "/listings",
		Binder: ez.BindNone,
		Roles:  []string{auth.RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (listingsOut, error) {
			items, err := h.listings.All(c.Request.Context())
			if err != nil {
				return listingsOut{}, err
			}
			return listingsOut{Total: len(items), Items: items}, nil
		},
	})

	ez.Register(e, ez.Action[struct{}, alertsOut]{
		Method: http.MethodGet,
		Path:   "/alerts",
		Binder: ez.BindNone,
		Roles:  []string{auth.RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (alertsOut, error) {
			items, err := h.alerts.All(c.Request.Context())
			if err != nil {
				return alertsOut{}, err
			}
			return alertsOut{Total: len(items), Items: items}, nil
		},
	})

	ez.Register(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Roles:  []string{auth.RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			id, err := strconv.Atoi(c.Param("id"))
			if err != nil {
				return nil, ez.BadRequest("invalid id")
			}
			u, err := h.users.FindByID(c.Request.Context(), id)
			if err != nil {
				return nil, err
			}
			if u == nil {
				return nil, ez.NotFound("user not found")
			}
			return u, nil
		},
	})
}
