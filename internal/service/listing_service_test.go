package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"property-alerts/internal/domain"
	"property-alerts/internal/eventlog"
	"property-alerts/internal/notify"
	"property-alerts/internal/service"
)

type publishFixture struct {
	listings *memListings
	alerts   *memAlerts
	sent     *notify.Recorder
	events   *eventlog.Memory
	svc      *service.ListingService
}

func newPublishFixture(addDate bool, alerts ...domain.Alert) *publishFixture {
	f := &publishFixture{
		listings: &memListings{},
		alerts:   &memAlerts{items: alerts},
		sent:     &notify.Recorder{},
		events:   &eventlog.Memory{},
	}
	users := defaultUsers()
	d := service.NewDispatcher(service.DispatcherOpts{Email: f.sent, SMS: f.sent, Push: f.sent, Users: users})
	f.svc = service.NewListingService(service.ListingServiceOpts{
		Listings:   f.listings,
		Alerts:     f.alerts,
		Users:      users,
		Dispatcher: d,
		Events: service.EventOpts{
			Logger:  f.events,
			AddDate: addDate,
			Now:     func() time.Time { return time.Date(2026, 3, 9, 15, 4, 5, 0, time.UTC) },
		},
	})
	return f
}

func flat() service.PublishListingCommand {
	return service.PublishListingCommand{
		ID: 1, Description: "Flat in Amsterdam", PostalCode: "04600",
		Price: 100000, NumberOfRooms: 3, SquareMeters: 160, OwnerID: 2,
	}
}

func TestPublish_SendsOneEmailToMatchingAlert(t *testing.T) {
	f := newPublishFixture(false, domain.Alert{UserID: 2, AlertType: "email", PostalCode: "04600"})

	res, err := f.svc.Publish(context.Background(), flat())
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	want := []domain.Email{{
		From:    "noreply@codium.team",
		To:      "rDeckard@email.com",
		Subject: "There is a new property at 04600",
		Body:    "More information at https://properties.codium.team/1",
	}}
	if !reflect.DeepEqual(f.sent.Emails, want) {
		t.Errorf("emails = %+v, want %+v", f.sent.Emails, want)
	}
	if f.sent.Total() != 1 {
		t.Errorf("total sends = %d, want 1", f.sent.Total())
	}
	if res.Matched != 1 || res.Sent != 1 || res.DispatchErr != nil {
		t.Errorf("result = %+v", res)
	}
	if len(f.listings.items) != 1 || f.listings.items[0].ID != 1 {
		t.Errorf("listing not persisted: %+v", f.listings.items)
	}
}

func TestPublish_InvalidPostalCodeHasNoSideEffects(t *testing.T) {
	f := newPublishFixture(false, domain.Alert{UserID: 2, AlertType: "email", PostalCode: "04600"})
	cmd := flat()
	cmd.PostalCode = "046000"

	_, err := f.svc.Publish(context.Background(), cmd)
	if !errors.Is(err, domain.ErrInvalidPostalCode) {
		t.Fatalf("err = %v, want InvalidPostalCode", err)
	}
	if err.Error() != "046000 is not a valid postal code" {
		t.Errorf("message = %q", err.Error())
	}
	if len(f.listings.items) != 0 || f.sent.Total() != 0 || len(f.events.Entries()) != 0 {
		t.Errorf("side effects: listings=%d sends=%d events=%d", len(f.listings.items), f.sent.Total(), len(f.events.Entries()))
	}
}

func TestPublish_NegativePriceLeavesStoreUntouched(t *testing.T) {
	f := newPublishFixture(false)
	existing := domain.Listing{ID: 7, PostalCode: "08001", Price: 5, OwnerID: 1}
	f.listings.items = []domain.Listing{existing}
	before, _ := f.listings.LoadAll(context.Background())

	cmd := flat()
	cmd.Price = -1
	_, err := f.svc.Publish(context.Background(), cmd)
	if !errors.Is(err, domain.ErrInvalidPrice) || err.Error() != "Price cannot be negative" {
		t.Fatalf("err = %v", err)
	}
	after, _ := f.listings.LoadAll(context.Background())
	if !reflect.DeepEqual(before, after) {
		t.Errorf("store changed: before %+v after %+v", before, after)
	}
}

func TestPublish_UnknownOwner(t *testing.T) {
	f := newPublishFixture(false)
	cmd := flat()
	cmd.OwnerID = 42

	_, err := f.svc.Publish(context.Background(), cmd)
	if !errors.Is(err, domain.ErrInvalidUserID) {
		t.Fatalf("err = %v, want InvalidUserId", err)
	}
	if err.Error() != "The owner 42 does not exist" {
		t.Errorf("message = %q", err.Error())
	}
	if len(f.listings.items) != 0 {
		t.Error("listing persisted for unknown owner")
	}
}

func TestPublish_DeletedAlertOwnerDoesNotBlockOthers(t *testing.T) {
	f := newPublishFixture(false,
		domain.Alert{UserID: 99, AlertType: "email", PostalCode: "04600"},
		domain.Alert{UserID: 2, AlertType: "sms", PostalCode: "04600"},
	)
	res, err := f.svc.Publish(context.Background(), flat())
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if res.DispatchErr != nil {
		t.Errorf("dispatch err = %v, want nil", res.DispatchErr)
	}
	if len(f.sent.SMS) != 1 || len(f.sent.Emails) != 0 {
		t.Errorf("sms=%d emails=%d, want 1/0", len(f.sent.SMS), len(f.sent.Emails))
	}
	if res.Matched != 2 || res.Sent != 1 {
		t.Errorf("matched=%d sent=%d", res.Matched, res.Sent)
	}
}

func TestPublish_SendFailureIsCollected(t *testing.T) {
	f := newPublishFixture(false,
		domain.Alert{UserID: 2, AlertType: "email", PostalCode: "04600"},
		domain.Alert{UserID: 1, AlertType: "push", PostalCode: "04600"},
	)
	boom := errors.New("smtp down")
	f.sent.Fail = map[domain.Channel]error{domain.ChannelEmail: boom}

	res, err := f.svc.Publish(context.Background(), flat())
	if err != nil {
		t.Fatalf("publish must succeed, got %v", err)
	}
	if !errors.Is(res.DispatchErr, boom) {
		t.Errorf("dispatch err = %v, want %v", res.DispatchErr, boom)
	}
	if len(f.sent.Pushes) != 1 || f.sent.Pushes[0].PhoneNumber != "600111222" {
		t.Errorf("pushes = %+v", f.sent.Pushes)
	}
}

func TestPublish_ConjunctiveMatching(t *testing.T) {
	f := newPublishFixture(false,
		domain.Alert{UserID: 2, AlertType: "email", PostalCode: "04600", MaximumPrice: intp(200000), MinimumRooms: intp(4)},
	)
	res, err := f.svc.Publish(context.Background(), flat())
	if err != nil {
		t.Fatal(err)
	}
	if res.Matched != 0 || f.sent.Total() != 0 {
		t.Errorf("room range should exclude: matched=%d", res.Matched)
	}
}

func TestPublish_AlertStoreFailureDegrades(t *testing.T) {
	f := newPublishFixture(false)
	f.alerts.loadErr = errors.Join(domain.ErrStoreUnavailable, errDisk)

	res, err := f.svc.Publish(context.Background(), flat())
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if res.Evaluated != 0 || len(f.listings.items) != 1 {
		t.Errorf("result = %+v, listings = %d", res, len(f.listings.items))
	}
}

func TestPublish_WriteFailure(t *testing.T) {
	f := newPublishFixture(false)
	f.listings.saveErr = errors.Join(domain.ErrStoreUnavailable, errDisk)

	_, err := f.svc.Publish(context.Background(), flat())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("err = %v, want StoreUnavailable", err)
	}
	if len(f.events.Entries()) != 0 {
		t.Error("event logged for failed publish")
	}
}

func TestPublish_EventLog(t *testing.T) {
	for _, addDate := range []bool{false, true} {
		f := newPublishFixture(addDate)
		if _, err := f.svc.Publish(context.Background(), flat()); err != nil {
			t.Fatal(err)
		}
		entries := f.events.Entries()
		if len(entries) != 1 {
			t.Fatalf("entries = %d, want 1", len(entries))
		}
		e := entries[0]
		if e["id"] != 1 || e["postalCode"] != "04600" || e["ownerId"] != 2 || e["squareMeters"] != 160 {
			t.Errorf("fields = %v", e)
		}
		date, ok := e["date"]
		if ok != addDate {
			t.Errorf("addDate=%v but date present=%v", addDate, ok)
		}
		if addDate && date != "2026-03-09" {
			t.Errorf("date = %v", date)
		}
	}
}
