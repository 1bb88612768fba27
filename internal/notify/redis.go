package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"property-alerts/internal/domain"
)

// RedisPublisher *redis.Client 满足该接口
type RedisPublisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisPushSender 推送消息通过 PUBLISH 交给订阅方
type RedisPushSender struct {
	rdb     RedisPublisher
	channel string
}

func NewRedisPushSender(rdb RedisPublisher, channel string) *RedisPushSender {
	return &RedisPushSender{rdb: rdb, channel: channel}
}

func (s *RedisPushSender) SendPush(ctx context.Context, m domain.PushMessage) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("redis marshal push: %w", err)
	}
	if err := s.rdb.Publish(ctx, s.channel, b).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", s.channel, err)
	}
	return nil
}
