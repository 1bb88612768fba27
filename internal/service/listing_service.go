package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"property-alerts/internal/domain"
)

// PublishListingCommand 发布房源入参
type PublishListingCommand struct {
	ID            int
	Description   string
	PostalCode    string
	Price         int
	NumberOfRooms int
	SquareMeters  int
	OwnerID       int
}

func (c PublishListingCommand) listing() domain.Listing {
	return domain.Listing{
		ID:            c.ID,
		Description:   c.Description,
		PostalCode:    c.PostalCode,
		Price:         c.Price,
		NumberOfRooms: c.NumberOfRooms,
		SquareMeters:  c.SquareMeters,
		OwnerID:       c.OwnerID,
	}
}

// PublishResult DispatchErr 非空不代表发布失败
type PublishResult struct {
	Listing     domain.Listing
	Evaluated   int
	Matched     int
	Sent        int
	DispatchErr error
}

type ListingServiceOpts struct {
	Listings   domain.ListingStore
	Alerts     domain.AlertStore
	Users      domain.UserDirectory
	Dispatcher *Dispatcher
	Events     EventOpts
	Log        *zap.Logger
}

type ListingService struct {
	listings   domain.ListingStore
	alerts     domain.AlertStore
	users      domain.UserDirectory
	dispatcher *Dispatcher
	events     eventRecorder
	log        *zap.Logger
}

func NewListingService(o ListingServiceOpts) *ListingService {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return &ListingService{
		listings:   o.Listings,
		alerts:     o.Alerts,
		users:      o.Users,
		dispatcher: o.Dispatcher,
		events:     newEventRecorder(o.Events),
		log:        o.Log,
	}
}

// Publish 校验 → 校验业主 → 落库 → 告警扇出 → 事件日志
func (s *ListingService) Publish(ctx context.Context, cmd PublishListingCommand) (PublishResult, error) {
	l := cmd.listing()
	if err := l.Validate(); err != nil {
		return PublishResult{}, err
	}

	owner, err := s.users.FindByID(ctx, l.OwnerID)
	if err != nil {
		return PublishResult{}, fmt.Errorf("lookup owner %d: %w", l.OwnerID, err)
	}
	if owner == nil {
		return PublishResult{}, &domain.Error{
			Kind: domain.KindInvalidUserID,
			Msg:  fmt.Sprintf("The owner %d does not exist", l.OwnerID),
		}
	}

	if err := s.listings.Append(ctx, l); err != nil {
		return PublishResult{}, fmt.Errorf("save listing %d: %w", l.ID, err)
	}
	listingsPublished.Inc()

	// 读告警失败降级为空集合
	alerts, err := s.alerts.LoadAll(ctx)
	if err != nil {
		s.log.Warn("load alerts failed, no alerts evaluated", zap.Int("listing_id", l.ID), zap.Error(err))
		alerts = nil
	}

	rep := s.dispatcher.Dispatch(ctx, l, alerts)
	if rep.Err != nil {
		s.log.Warn("some notifications failed", zap.Int("listing_id", l.ID), zap.Error(rep.Err))
	}

	s.events.record(ctx, map[string]any{
		"id":            l.ID,
		"description":   l.Description,
		"postalCode":    l.PostalCode,
		"price":         l.Price,
		"numberOfRooms": l.NumberOfRooms,
		"squareMeters":  l.SquareMeters,
		"ownerId":       l.OwnerID,
	}, dayStamp)

	return PublishResult{
		Listing:     l,
		Evaluated:   rep.Evaluated,
		Matched:     rep.Matched,
		Sent:        rep.Sent,
		DispatchErr: rep.Err,
	}, nil
}

// All 管理端使用，读失败直接返回
func (s *ListingService) All(ctx context.Context) ([]domain.Listing, error) {
	return s.listings.LoadAll(ctx)
}
