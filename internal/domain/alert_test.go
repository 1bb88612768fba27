package domain_test

import (
	"errors"
	"testing"

	"property-alerts/internal/domain"
)

func TestParseChannel_CaseInsensitive(t *testing.T) {
	cases := map[string]domain.Channel{
		"email": domain.ChannelEmail,
		"EMAIL": domain.ChannelEmail,
		"Sms":   domain.ChannelSMS,
		"push":  domain.ChannelPush,
		"PuSh":  domain.ChannelPush,
	}
	for in, want := range cases {
		got, ok := domain.ParseChannel(in)
		if !ok || got != want {
			t.Errorf("ParseChannel(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
}

func TestParseChannel_Unknown(t *testing.T) {
	for _, s := range []string{"", "asdf", "telegram", " email"} {
		if _, ok := domain.ParseChannel(s); ok {
			t.Errorf("ParseChannel(%q) accepted", s)
		}
	}
}

func TestValidateAlertType_Message(t *testing.T) {
	_, err := domain.ValidateAlertType("asdf")
	if !errors.Is(err, domain.ErrInvalidAlertType) {
		t.Fatalf("err = %v, want InvalidAlertType", err)
	}
	if err.Error() != "The alert type asdf does not exist" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestKindOf(t *testing.T) {
	_, err := domain.NewPostalCode("x")
	if domain.KindOf(err) != domain.KindInvalidPostalCode {
		t.Errorf("KindOf = %q", domain.KindOf(err))
	}
	if domain.KindOf(errors.New("plain")) != "" {
		t.Error("KindOf(plain error) should be empty")
	}
}
