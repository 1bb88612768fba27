package user

import (
	"time"

	"property-alerts/internal/domain"
)

// UserModel 用户参考数据，由外部系统写入
type UserModel struct {
	ID          int    `gorm:"primaryKey;autoIncrement:false"`
	Name        string `gorm:"size:64;not null"`
	Email       string `gorm:"size:255;not null"`
	PhoneNumber string `gorm:"size:32"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

func (m UserModel) ToDomain() domain.User {
	return domain.User{ID: m.ID, Name: m.Name, Email: m.Email, PhoneNumber: m.PhoneNumber}
}
