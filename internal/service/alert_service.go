package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"property-alerts/internal/domain"
)

// AddAlertCommand 注册告警入参，AlertType 原样保存
type AddAlertCommand struct {
	UserID              int
	AlertType           string
	PostalCode          string
	MinimumPrice        *int
	MaximumPrice        *int
	MinimumRooms        *int
	MaximumRooms        *int
	MinimumSquareMeters *int
	MaximumSquareMeters *int
}

func (c AddAlertCommand) alert() domain.Alert {
	return domain.Alert{
		UserID:              c.UserID,
		AlertType:           c.AlertType,
		PostalCode:          c.PostalCode,
		MinimumPrice:        c.MinimumPrice,
		MaximumPrice:        c.MaximumPrice,
		MinimumRooms:        c.MinimumRooms,
		MaximumRooms:        c.MaximumRooms,
		MinimumSquareMeters: c.MinimumSquareMeters,
		MaximumSquareMeters: c.MaximumSquareMeters,
	}
}

type AlertServiceOpts struct {
	Alerts domain.AlertStore
	Users  domain.UserDirectory
	Events EventOpts
	Log    *zap.Logger
}

type AlertService struct {
	alerts domain.AlertStore
	users  domain.UserDirectory
	events eventRecorder
	log    *zap.Logger
}

func NewAlertService(o AlertServiceOpts) *AlertService {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return &AlertService{alerts: o.Alerts, users: o.Users, events: newEventRecorder(o.Events), log: o.Log}
}

// AddAlert 条件 → 渠道 → 用户 → 落库 → 事件日志
func (s *AlertService) AddAlert(ctx context.Context, cmd AddAlertCommand) (domain.Alert, error) {
	a := cmd.alert()
	if _, err := a.Criteria(); err != nil {
		return domain.Alert{}, err
	}
	if _, err := domain.ValidateAlertType(a.AlertType); err != nil {
		return domain.Alert{}, err
	}

	u, err := s.users.FindByID(ctx, a.UserID)
	if err != nil {
		return domain.Alert{}, fmt.Errorf("lookup user %d: %w", a.UserID, err)
	}
	if u == nil {
		return domain.Alert{}, &domain.Error{
			Kind: domain.KindInvalidUserID,
			Msg:  fmt.Sprintf("The user %d does not exist", a.UserID),
		}
	}

	if err := s.alerts.Append(ctx, a); err != nil {
		return domain.Alert{}, fmt.Errorf("save alert for user %d: %w", a.UserID, err)
	}
	s.log.Info("alert registered", zap.Int("user_id", a.UserID), zap.String("alert_type", a.AlertType))

	s.events.record(ctx, map[string]any{
		"userId":              a.UserID,
		"alertType":           a.AlertType,
		"postalCode":          a.PostalCode,
		"minimumPrice":        optional(a.MinimumPrice),
		"maximumPrice":        optional(a.MaximumPrice),
		"minimumRooms":        optional(a.MinimumRooms),
		"maximumRooms":        optional(a.MaximumRooms),
		"minimumSquareMeters": optional(a.MinimumSquareMeters),
		"maximumSquareMeters": optional(a.MaximumSquareMeters),
	}, timeStamp)

	return a, nil
}

// All 管理端使用
func (s *AlertService) All(ctx context.Context) ([]domain.Alert, error) {
	return s.alerts.LoadAll(ctx)
}
