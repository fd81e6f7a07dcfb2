package cancellationRepo

import (
	"errors"
	"time"

	"roamly/models"
)

// ErrDuplicateActiveRequest is returned by Insert when the storage-level
// uniqueness constraint rejects a second active request for the same booking.
var ErrDuplicateActiveRequest = errors.New("an active cancellation request already exists for this booking")

// ErrNotPending is returned by UpdateStatus when the request is no longer in
// the pending state.
var ErrNotPending = errors.New("cancellation request is not pending")

// CancellationRequestRepository defines data access for cancellation requests.
// Insert is used only by request intake; UpdateStatus only by the
// admin-processing side.
type CancellationRequestRepository interface {
	Insert(req *models.CancellationRequest) error
	GetByID(id string) (*models.CancellationRequest, error)
	// LatestActiveByBookingID returns the most recent request for the booking
	// with status pending or approved, or (nil, nil) when there is none.
	LatestActiveByBookingID(bookingID string) (*models.CancellationRequest, error)
	ListByStatus(status string, limit int64) ([]models.CancellationRequest, error)
	// UpdateStatus moves a pending request to a terminal status and stamps
	// processed-at. Fails with ErrNotPending if the request has already been
	// processed.
	UpdateStatus(id, status, adminNotes string, processedAt time.Time) error
}
