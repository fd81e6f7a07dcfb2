package cancel

import "roamly/models"

// CanTransition reports whether a cancellation request may move between the
// two statuses. Only pending requests move, and only to approved or rejected.
// The cancelled status is reserved for the booking-side cancel path and is
// never written through request transitions.
func CanTransition(from, to string) bool {
	if from != models.CancellationStatusPending {
		return false
	}
	switch to {
	case models.CancellationStatusApproved, models.CancellationStatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(status string) bool {
	switch status {
	case models.CancellationStatusApproved,
		models.CancellationStatusRejected,
		models.CancellationStatusCancelled:
		return true
	default:
		return false
	}
}
