package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"property-alerts/internal/domain"
)

const (
	RoutingKeyEmail = "notification.email"
	RoutingKeySMS   = "notification.sms"
	RoutingKeyPush  = "notification.push"

	publishTimeout = 10 * time.Second
)

// Publisher *amqp.Channel 满足该接口
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPSender 每条通知发布一条 JSON 消息到 topic exchange
type AMQPSender struct {
	pub      Publisher
	exchange string
	log      *zap.Logger
	conn     *amqp.Connection
	ch       *amqp.Channel
}

func NewAMQPSender(pub Publisher, exchange string, l *zap.Logger) *AMQPSender {
	if l == nil {
		l = zap.NewNop()
	}
	return &AMQPSender{pub: pub, exchange: exchange, log: l.Named("amqp")}
}

// DialAMQP 建立连接并声明 durable topic exchange
func DialAMQP(url, exchange string, l *zap.Logger) (*AMQPSender, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp declare exchange %q: %w", exchange, err)
	}
	s := NewAMQPSender(ch, exchange, l)
	s.conn, s.ch = conn, ch
	return s, nil
}

func (s *AMQPSender) Close() error {
	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *AMQPSender) SendEmail(ctx context.Context, m domain.Email) error {
	return s.publish(ctx, RoutingKeyEmail, m)
}

func (s *AMQPSender) SendSMS(ctx context.Context, m domain.SMSMessage) error {
	return s.publish(ctx, RoutingKeySMS, m)
}

func (s *AMQPSender) SendPush(ctx context.Context, m domain.PushMessage) error {
	return s.publish(ctx, RoutingKeyPush, m)
}

func (s *AMQPSender) publish(ctx context.Context, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("amqp marshal %s: %w", key, err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}

	pctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := s.pub.PublishWithContext(pctx, s.exchange, key, false, false, msg); err != nil {
		s.log.Error("publish failed", zap.String("routing_key", key), zap.Error(err))
		return fmt.Errorf("amqp publish %s: %w", key, err)
	}
	s.log.Debug("published", zap.String("routing_key", key))
	return nil
}
