package service

import (
	"testing"
	"time"
)

func TestParseScheduledTime_RFC3339(t *testing.T) {
	got, err := parseScheduledTime("2026-03-01T10:30:00+02:00")
	if err != nil {
		t.Fatalf("parseScheduledTime error: %v", err)
	}
	want := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Fatalf("result must be UTC, got %v", got.Location())
	}
}

func TestParseScheduledTime_DatetimeLocal(t *testing.T) {
	got, err := parseScheduledTime("2026-03-01T10:30")
	if err != nil {
		t.Fatalf("parseScheduledTime error: %v", err)
	}
	want := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParseScheduledTime_Invalid(t *testing.T) {
	if _, err := parseScheduledTime("next tuesday"); err == nil {
		t.Fatalf("expected error for unparseable datetime, got nil")
	}
}

func TestNormalizePlatforms(t *testing.T) {
	got := normalizePlatforms([]string{" Instagram", "instagram", "TIKTOK", "", "facebook"})
	want := []string{"instagram", "tiktok", "facebook"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}
