package utils

import "testing"

func TestPassword(t *testing.T) {
	h, err := HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword("s3cret", h) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong", h) || CheckPassword("s3cret", "not-a-hash") {
		t.Error("wrong password accepted")
	}
}
