package repo

import (
	"context"

	"gorm.io/gorm"

	"property-alerts/internal/domain"
	"property-alerts/internal/feature/alert"
)

type AlertRepo struct{ db *gorm.DB }

func NewAlertRepo(db *gorm.DB) *AlertRepo { return &AlertRepo{db: db} }

// LoadAll 自增主键即插入顺序
func (r *AlertRepo) LoadAll(ctx context.Context) ([]domain.Alert, error) {
	var rows []alert.AlertModel
	if err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, storeErr("load alerts", err)
	}
	out := make([]domain.Alert, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.ToDomain())
	}
	return out, nil
}

func (r *AlertRepo) Append(ctx context.Context, a domain.Alert) error {
	m := alert.FromDomain(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return storeErr("save alert", err)
	}
	return nil
}
