package notify

import (
	"context"
	"sync"

	"property-alerts/internal/domain"
)

// Recorder 内存发送器，测试用；Fail 中的渠道直接返回对应错误
type Recorder struct {
	mu     sync.Mutex
	Emails []domain.Email
	SMS    []domain.SMSMessage
	Pushes []domain.PushMessage
	Fail   map[domain.Channel]error
}

func (r *Recorder) failure(ch domain.Channel) error {
	if r.Fail == nil {
		return nil
	}
	return r.Fail[ch]
}

func (r *Recorder) SendEmail(_ context.Context, m domain.Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failure(domain.ChannelEmail); err != nil {
		return err
	}
	r.Emails = append(r.Emails, m)
	return nil
}

func (r *Recorder) SendSMS(_ context.Context, m domain.SMSMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failure(domain.ChannelSMS); err != nil {
		return err
	}
	r.SMS = append(r.SMS, m)
	return nil
}

func (r *Recorder) SendPush(_ context.Context, m domain.PushMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failure(domain.ChannelPush); err != nil {
		return err
	}
	r.Pushes = append(r.Pushes, m)
	return nil
}

// Total 已成功发送的条数
func (r *Recorder) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Emails) + len(r.SMS) + len(r.Pushes)
}
