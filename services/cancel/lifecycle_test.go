package cancel

import (
	"testing"

	"roamly/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.CancellationStatusPending, models.CancellationStatusApproved, true},
		{models.CancellationStatusPending, models.CancellationStatusRejected, true},
		{models.CancellationStatusPending, models.CancellationStatusCancelled, false},
		{models.CancellationStatusPending, models.CancellationStatusPending, false},
		{models.CancellationStatusApproved, models.CancellationStatusRejected, false},
		{models.CancellationStatusApproved, models.CancellationStatusPending, false},
		{models.CancellationStatusRejected, models.CancellationStatusApproved, false},
		{models.CancellationStatusCancelled, models.CancellationStatusApproved, false},
		{models.CancellationStatusPending, "garbage", false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(models.CancellationStatusPending) {
		t.Error("pending should not be terminal")
	}
	for _, status := range []string{
		models.CancellationStatusApproved,
		models.CancellationStatusRejected,
		models.CancellationStatusCancelled,
	} {
		if !IsTerminal(status) {
			t.Errorf("%s should be terminal", status)
		}
	}
}
