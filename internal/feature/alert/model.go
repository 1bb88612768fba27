package alert

import (
	"time"

	"property-alerts/internal/domain"
)

// AlertModel 可选边界用可空列
type AlertModel struct {
	ID                  uint   `gorm:"primaryKey"`
	UserID              int    `gorm:"index;not null"`
	AlertType           string `gorm:"size:16;not null"`
	PostalCode          string `gorm:"size:5;not null"`
	MinimumPrice        *int
	MaximumPrice        *int
	MinimumRooms        *int
	MaximumRooms        *int
	MinimumSquareMeters *int
	MaximumSquareMeters *int

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (AlertModel) TableName() string { return "alerts" }

func FromDomain(a domain.Alert) AlertModel {
	return AlertModel{
		UserID:              a.UserID,
		AlertType:           a.AlertType,
		PostalCode:          a.PostalCode,
		MinimumPrice:        a.MinimumPrice,
		MaximumPrice:        a.MaximumPrice,
		MinimumRooms:        a.MinimumRooms,
		MaximumRooms:        a.MaximumRooms,
		MinimumSquareMeters: a.MinimumSquareMeters,
		MaximumSquareMeters: a.MaximumSquareMeters,
	}
}

func (m AlertModel) ToDomain() domain.Alert {
	return domain.Alert{
		UserID:              m.UserID,
		AlertType:           m.AlertType,
		PostalCode:          m.PostalCode,
		MinimumPrice:        m.MinimumPrice,
		MaximumPrice:        m.MaximumPrice,
		MinimumRooms:        m.MinimumRooms,
		MaximumRooms:        m.MaximumRooms,
		MinimumSquareMeters: m.MinimumSquareMeters,
		MaximumSquareMeters: m.MaximumSquareMeters,
	}
}
