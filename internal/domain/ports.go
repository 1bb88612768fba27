package domain

import "context"

// ListingStore 全量读 / 追加写，集合保持插入顺序
type ListingStore interface {
	LoadAll(ctx context.Context) ([]Listing, error)
	Append(ctx context.Context, l Listing) error
}

// AlertStore 同上
type AlertStore interface {
	LoadAll(ctx context.Context) ([]Alert, error)
	Append(ctx context.Context, a Alert) error
}

// 每个渠道一个发送器
type EmailSender interface {
	SendEmail(ctx context.Context, m Email) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, m SMSMessage) error
}

type PushSender interface {
	SendPush(ctx context.Context, m PushMessage) error
}

// EventLogger 可选的结构化事件记录
type EventLogger interface {
	Log(ctx context.Context, fields map[string]any)
}
