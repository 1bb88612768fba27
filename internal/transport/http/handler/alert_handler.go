package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"property-alerts/internal/domain"
	"property-alerts/internal/service"
	"property-alerts/internal/transport/http/ez"
)

type AlertHandler struct{ svc *service.AlertService }

func NewAlertHandler(s *service.AlertService) *AlertHandler { return &AlertHandler{svc: s} }

type addAlertReq struct {
	UserID              int    `json:"userId"`
	AlertType           string `json:"alertType"`
	PostalCode          string `json:"postalCode"`
	MinimumPrice        *int   `json:"minimumPrice"`
	MaximumPrice        *int   `json:"maximumPrice"`
	MinimumRooms        *int   `json:"minimumRooms"`
	MaximumRooms        *int   `json:"maximumRooms"`
	MinimumSquareMeters *int   `json:"minimumSquareMeters"`
	MaximumSquareMeters *int   `json:"maximumSquareMeters"`
}

func (h *AlertHandler) MountAPI(api *gin.RouterGroup) {
	// --- POST /api/v1/alerts  注册告警 ---
	ez.Register(ez.New(api), ez.Action[addAlertReq, domain.Alert]{
		Method: http.MethodPost,
		Path:   "/alerts",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *addAlertReq) (domain.Alert, error) {
			return h.svc.AddAlert(c.Request.Context(), service.AddAlertCommand(*in))
		},
	})
}

func (h *AlertHandler) Priority() int { return 20 }
