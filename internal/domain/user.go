package domain

import "context"

// User 只读参考数据，用于解析通知目的地
type User struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// UserDirectory 找不到时返回 (nil, nil)
type UserDirectory interface {
	FindByID(ctx context.Context, id int) (*User, error)
}
