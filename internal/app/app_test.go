package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"property-alerts/internal/core/config"
	"property-alerts/internal/domain"
	"property-alerts/internal/service"
)

func fileConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	users := filepath.Join(dir, "users.json")
	if err := os.WriteFile(users, []byte(`[{"id":2,"name":"Rick","email":"rDeckard@email.com","phoneNumber":"673777555"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	return &config.Config{
		App: config.App{Name: "property-alerts"},
		JWT: config.JWT{Secret: "k", Issuer: "property-alerts", AccessTokenTTLMin: 5},
		Store: config.Store{
			Driver:       "file",
			ListingsFile: filepath.Join(dir, "listings.json"),
			AlertsFile:   filepath.Join(dir, "alerts.json"),
			UsersFile:    users,
		},
		Notify: config.Notify{Driver: "log"},
		Events: config.Events{Driver: "zap", AddDate: true},
	}
}

func TestNew_FileStoreEndToEnd(t *testing.T) {
	a, err := New(context.Background(), fileConfig(t), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	ctx := context.Background()

	if _, err := a.AlertSvc.AddAlert(ctx, service.AddAlertCommand{UserID: 2, AlertType: "email", PostalCode: "04600"}); err != nil {
		t.Fatalf("add alert: %v", err)
	}
	res, err := a.ListingSvc.Publish(ctx, service.PublishListingCommand{ID: 1, PostalCode: "04600", Price: 100000, OwnerID: 2})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if res.Matched != 1 || res.Sent != 1 {
		t.Errorf("result = %+v", res)
	}
	found, err := a.SearchSvc.Search(ctx, service.SearchQuery{PostalCode: "04600"})
	if err != nil || len(found) != 1 {
		t.Errorf("search = %v, %v", found, err)
	}
	if a.JWT == nil {
		t.Error("jwt not configured")
	}
}

func TestNew_SearchBeforeAnyListing(t *testing.T) {
	a, err := New(context.Background(), fileConfig(t), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	_, err = a.SearchSvc.Search(context.Background(), service.SearchQuery{PostalCode: "04600"})
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("err = %v, want StoreUnavailable for missing listings file", err)
	}
}

func TestNew_RedisNotifierNeedsRedis(t *testing.T) {
	cfg := fileConfig(t)
	cfg.Notify.Driver = "redis"
	if _, err := New(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Error("expected error without redis.enable")
	}
}

func TestEventTag(t *testing.T) {
	if got := eventTag("listing published"); got != "listing.published" {
		t.Errorf("tag = %q", got)
	}
}
