package filestore

import (
	"context"

	"property-alerts/internal/domain"
)

type ListingStore struct{ f *jsonFile[domain.Listing] }

func NewListingStore(path string) (*ListingStore, error) {
	f, err := newJSONFile[domain.Listing](path)
	if err != nil {
		return nil, err
	}
	return &ListingStore{f: f}, nil
}

func (s *ListingStore) LoadAll(context.Context) ([]domain.Listing, error) { return s.f.load() }

func (s *ListingStore) Append(_ context.Context, l domain.Listing) error { return s.f.appendOne(l) }

type AlertStore struct{ f *jsonFile[domain.Alert] }

func NewAlertStore(path string) (*AlertStore, error) {
	f, err := newJSONFile[domain.Alert](path)
	if err != nil {
		return nil, err
	}
	return &AlertStore{f: f}, nil
}

func (s *AlertStore) LoadAll(context.Context) ([]domain.Alert, error) { return s.f.load() }

func (s *AlertStore) Append(_ context.Context, a domain.Alert) error { return s.f.appendOne(a) }

// UserDirectory 用户数据只读，由外部维护
type UserDirectory struct{ f *jsonFile[domain.User] }

func NewUserDirectory(path string) (*UserDirectory, error) {
	f, err := newJSONFile[domain.User](path)
	if err != nil {
		return nil, err
	}
	return &UserDirectory{f: f}, nil
}

func (d *UserDirectory) FindByID(_ context.Context, id int) (*domain.User, error) {
	users, err := d.f.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}
