package service

import (
	"context"
	"time"

	"property-alerts/internal/domain"
)

// EventOpts 事件日志配置；Logger 为 nil 时不记录
type EventOpts struct {
	Logger  domain.EventLogger
	AddDate bool
	Now     func() time.Time
}

type eventRecorder struct {
	logger  domain.EventLogger
	addDate bool
	now     func() time.Time
}

func newEventRecorder(o EventOpts) eventRecorder {
	if o.Now == nil {
		o.Now = time.Now
	}
	return eventRecorder{logger: o.Logger, addDate: o.AddDate, now: o.Now}
}

// record date 由调用方决定格式
func (r eventRecorder) record(ctx context.Context, fields map[string]any, date func(time.Time) any) {
	if r.logger == nil {
		return
	}
	if r.addDate {
		fields["date"] = date(r.now())
	}
	r.logger.Log(ctx, fields)
}

func dayStamp(t time.Time) any { return t.Format("2006-01-02") }

func timeStamp(t time.Time) any { return t }

// optional nil 保持为 nil，便于下游区分“未设置”
func optional(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
