package cancel

import (
	"testing"
	"time"
)

func TestIsExpired(t *testing.T) {
	// Noon on 2025-01-20, UTC.
	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		bookingDate string
		tripEndDate string
		want        bool
	}{
		{"today", "2025-01-20", "", false},
		{"ten days ago", "2025-01-10", "", true},
		{"seven days in the future", "2025-01-27", "", false},
		{"yesterday still inside grace window", "2025-01-19", "", false},
		{"two days ago past grace window", "2025-01-18", "", true},
		{"multi-day trip uses end date", "2025-01-15", "2025-01-22", false},
		{"multi-day trip ended two days ago", "2025-01-10", "2025-01-18", true},
		{"multi-day trip ended yesterday", "2025-01-10", "2025-01-19", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExpired(tt.bookingDate, tt.tripEndDate, now); got != tt.want {
				t.Errorf("IsExpired(%q, %q) = %v, want %v", tt.bookingDate, tt.tripEndDate, got, tt.want)
			}
		})
	}
}

func TestIsExpired_CutoffBoundary(t *testing.T) {
	// Cutoff for a 2025-01-18 booking is 2025-01-19 23:59:59; expiry is
	// strictly after it.
	atCutoff := time.Date(2025, 1, 19, 23, 59, 59, 0, time.UTC)
	if IsExpired("2025-01-18", "", atCutoff) {
		t.Error("exactly at the cutoff should not be expired")
	}

	justAfter := atCutoff.Add(time.Second)
	if !IsExpired("2025-01-18", "", justAfter) {
		t.Error("one second past the cutoff should be expired")
	}
}

func TestIsExpired_FailsClosedOnBadDates(t *testing.T) {
	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)

	if !IsExpired("not-a-date", "", now) {
		t.Error("an unparseable booking date should read as expired")
	}
	if !IsExpired("not-a-date", "also-not-a-date", now) {
		t.Error("unparseable dates should read as expired")
	}
}

func TestIsExpired_FallsBackToBookingDateOnBadEndDate(t *testing.T) {
	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)

	if IsExpired("2025-01-20", "garbage", now) {
		t.Error("a bad end date should fall back to a still-valid booking date")
	}
}
