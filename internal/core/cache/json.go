package cache

import (
	"context"
	"encoding/json"
	"time"
)

// negative 查无此项的占位值
var negative = []byte("null")

// GetOrLoadJSON 读穿缓存的 JSON 版本
//   - load 返回 (nil, nil) 时写入占位值，TTL 内直接返回 (nil, nil)
//   - 缓存内容无法解码时删除该 key 并直接回源
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		if v == nil {
			return negative, nil
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	if string(b) == string(negative) {
		return nil, nil
	}
	out := new(T)
	if e := json.Unmarshal(b, out); e != nil {
		_ = c.Del(ctx, key)
		return load(ctx)
	}
	return out, nil
}
