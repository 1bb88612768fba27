package service_test

import (
	"context"
	"errors"
	"sync"

	"property-alerts/internal/domain"
)

var errDisk = errors.New("disk unavailable")

type memListings struct {
	mu      sync.Mutex
	items   []domain.Listing
	loadErr error
	saveErr error
}

func (m *memListings) LoadAll(context.Context) ([]domain.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]domain.Listing(nil), m.items...), nil
}

func (m *memListings) Append(_ context.Context, l domain.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items = append(m.items, l)
	return nil
}

type memAlerts struct {
	mu      sync.Mutex
	items   []domain.Alert
	loadErr error
}

func (m *memAlerts) LoadAll(context.Context) ([]domain.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]domain.Alert(nil), m.items...), nil
}

func (m *memAlerts) Append(_ context.Context, a domain.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, a)
	return nil
}

type memUsers map[int]domain.User

func (m memUsers) FindByID(_ context.Context, id int) (*domain.User, error) {
	u, ok := m[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func defaultUsers() memUsers {
	return memUsers{
		1: {ID: 1, Name: "Roy", Email: "roy@email.com", PhoneNumber: "600111222"},
		2: {ID: 2, Name: "Rick", Email: "rDeckard@email.com", PhoneNumber: "673777555"},
	}
}

func intp(v int) *int { return &v }
