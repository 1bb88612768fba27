// Package eventlog 业务事件日志：zap、fluentd 与内存三种实现
package eventlog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fluent/fluent-logger-golang/fluent"
	"go.uber.org/zap"
)

// Zap 每次调用写一条 info
type Zap struct {
	log *zap.Logger
	msg string
}

func NewZap(l *zap.Logger, msg string) *Zap {
	if msg == "" {
		msg = "event"
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &Zap{log: l.Named("event"), msg: msg}
}

func (z *Zap) Log(_ context.Context, fields map[string]any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	zf := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		zf = append(zf, zap.Any(k, fields[k]))
	}
	z.log.Info(z.msg, zf...)
}

// Poster *fluent.Fluent 满足该接口
type Poster interface {
	Post(tag string, message interface{}) error
}

// Fluent 投递到 fluentd / fluent-bit，失败只记本地日志
type Fluent struct {
	client Poster
	tag    string
	log    *zap.Logger
}

func NewFluent(client Poster, tag string, l *zap.Logger) *Fluent {
	if l == nil {
		l = zap.NewNop()
	}
	return &Fluent{client: client, tag: tag, log: l}
}

// DialFluent 创建客户端；fluent 没有 ping，连接错误在首次投递时出现
func DialFluent(host string, port int, tagPrefix string) (*fluent.Fluent, error) {
	if tagPrefix == "" {
		return nil, fmt.Errorf("fluent tag prefix is required")
	}
	c, err := fluent.New(fluent.Config{FluentHost: host, FluentPort: port, TagPrefix: tagPrefix})
	if err != nil {
		return nil, fmt.Errorf("create fluent client: %w", err)
	}
	return c, nil
}

func (f *Fluent) Log(_ context.Context, fields map[string]any) {
	data := make(map[string]any, len(fields))
	for k, v := range fields {
		data[k] = v
	}
	if err := f.client.Post(f.tag, data); err != nil {
		f.log.Warn("fluent post failed", zap.String("tag", f.tag), zap.Error(err))
	}
}

// Memory 测试用
type Memory struct {
	mu      sync.Mutex
	entries []map[string]any
}

func (m *Memory) Log(_ context.Context, fields map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make(map[string]any, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	m.entries = append(m.entries, cp)
}

func (m *Memory) Entries() []map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]map[string]any, len(m.entries))
	copy(out, m.entries)
	return out
}
