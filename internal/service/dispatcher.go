package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"property-alerts/internal/domain"
)

const (
	DefaultSender  = "noreply@codium.team"
	DefaultBaseURL = "https://properties.codium.team/"
)

// DispatcherOpts From/BaseURL 为空时使用默认值
type DispatcherOpts struct {
	Email   domain.EmailSender
	SMS     domain.SMSSender
	Push    domain.PushSender
	Users   domain.UserDirectory
	From    string
	BaseURL string
	Log     *zap.Logger
}

// Dispatcher 对新房源逐条评估告警并发送通知
type Dispatcher struct {
	email   domain.EmailSender
	sms     domain.SMSSender
	push    domain.PushSender
	users   domain.UserDirectory
	from    string
	baseURL string
	log     *zap.Logger
}

func NewDispatcher(o DispatcherOpts) *Dispatcher {
	if o.From == "" {
		o.From = DefaultSender
	}
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(o.BaseURL, "/") {
		o.BaseURL += "/"
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return &Dispatcher{
		email: o.Email, sms: o.SMS, push: o.Push, users: o.Users,
		from: o.From, baseURL: o.BaseURL, log: o.Log,
	}
}

// DispatchReport 单次派发的统计；Err 为各告警失败的合并
type DispatchReport struct {
	Evaluated int
	Matched   int
	Sent      int
	Err       error
}

// Dispatch 单条告警失败不影响其余告警
func (d *Dispatcher) Dispatch(ctx context.Context, l domain.Listing, alerts []domain.Alert) DispatchReport {
	rep := DispatchReport{Evaluated: len(alerts)}
	var errs []error
	for i, a := range alerts {
		crit, err := a.Criteria()
		if err != nil {
			// 存量告警数据损坏：当作不匹配
			d.log.Warn("skip alert with invalid criteria", zap.Int("index", i), zap.Int("user_id", a.UserID), zap.Error(err))
			continue
		}
		if !crit.Matches(l) {
			continue
		}
		rep.Matched++
		alertsMatched.Inc()

		sent, err := d.notify(ctx, l, a)
		if err != nil {
			errs = append(errs, fmt.Errorf("alert %d (user %d): %w", i, a.UserID, err))
			continue
		}
		if sent {
			rep.Sent++
		}
	}
	rep.Err = errors.Join(errs...)
	return rep
}

// notify 用户不存在、渠道未知时静默跳过
func (d *Dispatcher) notify(ctx context.Context, l domain.Listing, a domain.Alert) (bool, error) {
	u, err := d.users.FindByID(ctx, a.UserID)
	if err != nil {
		return false, fmt.Errorf("resolve owner: %w", err)
	}
	if u == nil {
		d.log.Debug("alert owner not found", zap.Int("user_id", a.UserID))
		return false, nil
	}

	ch, ok := domain.ParseChannel(a.AlertType)
	if !ok {
		d.log.Debug("unknown alert channel", zap.String("alert_type", a.AlertType))
		return false, nil
	}

	switch ch {
	case domain.ChannelEmail:
		err = d.email.SendEmail(ctx, domain.Email{
			From:    d.from,
			To:      u.Email,
			Subject: d.subject(l),
			Body:    "More information at " + d.link(l),
		})
	case domain.ChannelSMS:
		err = d.sms.SendSMS(ctx, domain.SMSMessage{PhoneNumber: u.PhoneNumber, Message: d.shortMessage(l)})
	case domain.ChannelPush:
		err = d.push.SendPush(ctx, domain.PushMessage{PhoneNumber: u.PhoneNumber, Message: d.shortMessage(l)})
	}

	if err != nil {
		notificationsSent.WithLabelValues(string(ch), "error").Inc()
		return false, fmt.Errorf("send %s: %w", ch, err)
	}
	notificationsSent.WithLabelValues(string(ch), "ok").Inc()
	return true, nil
}

func (d *Dispatcher) subject(l domain.Listing) string {
	return "There is a new property at " + l.PostalCode
}

func (d *Dispatcher) link(l domain.Listing) string {
	return d.baseURL + strconv.Itoa(l.ID)
}

func (d *Dispatcher) shortMessage(l domain.Listing) string {
	return d.subject(l) + ". More information at " + d.link(l)
}
