package listing

import (
	"time"

	"property-alerts/internal/domain"
)

// ListingModel id 由调用方指定
type ListingModel struct {
	ID            int    `gorm:"primaryKey;autoIncrement:false"`
	Description   string `gorm:"type:text"`
	PostalCode    string `gorm:"size:5;index;not null"`
	Price         int    `gorm:"not null"`
	NumberOfRooms int
	SquareMeters  int
	OwnerID       int `gorm:"index;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ListingModel) TableName() string { return "listings" }

func FromDomain(l domain.Listing) ListingModel {
	return ListingModel{
		ID:            l.ID,
		Description:   l.Description,
		PostalCode:    l.PostalCode,
		Price:         l.Price,
		NumberOfRooms: l.NumberOfRooms,
		SquareMeters:  l.SquareMeters,
		OwnerID:       l.OwnerID,
	}
}

func (m ListingModel) ToDomain() domain.Listing {
	return domain.Listing{
		ID:            m.ID,
		Description:   m.Description,
		PostalCode:    m.PostalCode,
		Price:         m.Price,
		NumberOfRooms: m.NumberOfRooms,
		SquareMeters:  m.SquareMeters,
		OwnerID:       m.OwnerID,
	}
}
