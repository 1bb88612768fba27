package repo

import (
	"context"

	"gorm.io/gorm"

	"property-alerts/internal/domain"
	"property-alerts/internal/feature/listing"
)

type ListingRepo struct{ db *gorm.DB }

func NewListingRepo(db *gorm.DB) *ListingRepo { return &ListingRepo{db: db} }

// LoadAll 按主键排序，保证集合顺序稳定
func (r *ListingRepo) LoadAll(ctx context.Context) ([]domain.Listing, error) {
	var rows []listing.ListingModel
	if err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, storeErr("load listings", err)
	}
	out := make([]domain.Listing, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.ToDomain())
	}
	return out, nil
}

func (r *ListingRepo) Append(ctx context.Context, l domain.Listing) error {
	m := listing.FromDomain(l)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return storeErr("save listing", err)
	}
	return nil
}
