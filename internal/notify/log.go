package notify

import (
	"context"

	"go.uber.org/zap"

	"property-alerts/internal/domain"
)

// LogSender 以结构化日志代替真实投递，三个渠道共用
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(l *zap.Logger) *LogSender {
	if l == nil {
		l = zap.NewNop()
	}
	return &LogSender{log: l.Named("notify")}
}

func (s *LogSender) SendEmail(_ context.Context, m domain.Email) error {
	s.log.Info("email",
		zap.String("from", m.From),
		zap.String("to", m.To),
		zap.String("subject", m.Subject),
		zap.String("body", m.Body),
	)
	return nil
}

func (s *LogSender) SendSMS(_ context.Context, m domain.SMSMessage) error {
	s.log.Info("sms", zap.String("phone", m.PhoneNumber), zap.String("message", m.Message))
	return nil
}

func (s *LogSender) SendPush(_ context.Context, m domain.PushMessage) error {
	s.log.Info("push", zap.String("phone", m.PhoneNumber), zap.String("message", m.Message))
	return nil
}
