package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"property-alerts/internal/domain"
)

// SearchQuery 与告警同形的一次性搜索条件
type SearchQuery struct {
	PostalCode          string `form:"postalCode"`
	MinimumPrice        *int   `form:"minimumPrice"`
	MaximumPrice        *int   `form:"maximumPrice"`
	MinimumRooms        *int   `form:"minimumRooms"`
	MaximumRooms        *int   `form:"maximumRooms"`
	MinimumSquareMeters *int   `form:"minimumSquareMeters"`
	MaximumSquareMeters *int   `form:"maximumSquareMeters"`
}

func (q SearchQuery) criteriaInput() domain.CriteriaInput {
	return domain.CriteriaInput{
		PostalCode:          q.PostalCode,
		MinimumPrice:        q.MinimumPrice,
		MaximumPrice:        q.MaximumPrice,
		MinimumRooms:        q.MinimumRooms,
		MaximumRooms:        q.MaximumRooms,
		MinimumSquareMeters: q.MinimumSquareMeters,
		MaximumSquareMeters: q.MaximumSquareMeters,
	}
}

type SearchServiceOpts struct {
	Listings domain.ListingStore
	Events   EventOpts
	Log      *zap.Logger
}

type SearchService struct {
	listings domain.ListingStore
	events   eventRecorder
	log      *zap.Logger
}

func NewSearchService(o SearchServiceOpts) *SearchService {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return &SearchService{listings: o.Listings, events: newEventRecorder(o.Events), log: o.Log}
}

// Search 读失败返回 StoreUnavailable，空结果不是错误
func (s *SearchService) Search(ctx context.Context, q SearchQuery) ([]domain.Listing, error) {
	crit, err := domain.NewCriteria(q.criteriaInput())
	if err != nil {
		return nil, err
	}

	all, err := s.listings.LoadAll(ctx)
	if err != nil {
		s.log.Error("load listings failed", zap.Error(err))
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			err = errors.Join(domain.ErrStoreUnavailable, err)
		}
		return nil, fmt.Errorf("search listings: %w", err)
	}

	found := domain.Filter(crit, all)

	s.events.record(ctx, map[string]any{
		"postalCode":   q.PostalCode,
		"minimumPrice": optional(q.MinimumPrice),
		"maximumPrice": optional(q.MaximumPrice),
	}, timeStamp)

	return found, nil
}
