package utils

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=2$") {
		t.Fatalf("unexpected hash prefix: %s", hash)
	}

	ok, err := VerifyPassword("correct horse", hash)
	if err != nil || !ok {
		t.Fatalf("expected match, ok=%v err=%v", ok, err)
	}
	ok, err = VerifyPassword("wrong", hash)
	if err != nil || ok {
		t.Fatalf("expected mismatch, ok=%v err=%v", ok, err)
	}
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	_, err := VerifyPassword("x", "plaintext")
	if !errors.Is(err, ErrInvalidHash) {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
}

func TestDateKey(t *testing.T) {
	ts := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	if got := DateKey(ts, time.UTC); got != "2024-01-01" {
		t.Errorf("utc: got %s", got)
	}
	plus2 := time.FixedZone("plus2", 2*60*60)
	if got := DateKey(ts, plus2); got != "2024-01-02" {
		t.Errorf("fixed zone: got %s", got)
	}
}

func TestPreviousDay(t *testing.T) {
	tests := []struct{ in, want string }{
		{"2024-03-01", "2024-02-29"},
		{"2024-01-01", "2023-12-31"},
		{"bogus", ""},
	}
	for _, tt := range tests {
		if got := PreviousDay(tt.in); got != tt.want {
			t.Errorf("PreviousDay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
