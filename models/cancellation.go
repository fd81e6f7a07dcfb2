package models

import "time"

// Cancellation request statuses. A request starts as pending and is moved to
// approved or rejected by the admin-processing side; "cancelled" is reserved
// for the path that cancels the underlying booking directly.
const (
	CancellationStatusPending   = "pending"
	CancellationStatusApproved  = "approved"
	CancellationStatusRejected  = "rejected"
	CancellationStatusCancelled = "cancelled"
)

// CancellationRequest is the durable record created by request intake.
// It is created exactly once and afterwards only mutated by the
// admin-processing side (terminal status, notes, processed-at).
type CancellationRequest struct {
	ID            string     `bson:"id" json:"id"`
	BookingID     string     `bson:"booking_id" json:"booking_id"`
	Token         string     `bson:"token" json:"-"`
	OrderNumber   string     `bson:"order_number" json:"order_number"`
	CustomerEmail string     `bson:"customer_email" json:"customer_email"`
	CustomerName  string     `bson:"customer_name" json:"customer_name"`
	Reason        string     `bson:"reason,omitempty" json:"reason,omitempty"`
	Status        string     `bson:"status" json:"status"`
	RequestedAt   time.Time  `bson:"requested_at" json:"requested_at"`
	ProcessedAt   *time.Time `bson:"processed_at,omitempty" json:"processed_at,omitempty"`
	AdminNotes    string     `bson:"admin_notes,omitempty" json:"admin_notes,omitempty"`
}

// CancellationClaim is the tagged union of the two ways a caller can prove
// ownership of a booking: a signed magic-link token, or the manual fallback
// with the order details the customer knows.
type CancellationClaim interface {
	cancellationClaim()
}

// TokenClaim authorizes via a signed magic-link token.
type TokenClaim struct {
	Token  string
	Reason string
}

// ManualClaim authorizes via order number, email and name as entered by the
// customer. Fields are normalized by intake before matching.
type ManualClaim struct {
	OrderNumber   string
	CustomerEmail string
	CustomerName  string
	Reason        string
}

func (TokenClaim) cancellationClaim()  {}
func (ManualClaim) cancellationClaim() {}

// CancellationResult is the success payload of request intake. AlreadyExists
// is set when a pending request for the same booking was found and no new row
// was created.
type CancellationResult struct {
	RequestID     string `json:"requestId"`
	Message       string `json:"message"`
	AlreadyExists bool   `json:"alreadyExists,omitempty"`
}

// CancellationNotice is the queue payload handed to the notification worker
// after a request has been persisted.
type CancellationNotice struct {
	RequestID     string    `json:"request_id"`
	BookingID     string    `json:"booking_id"`
	OrderNumber   string    `json:"order_number"`
	CustomerEmail string    `json:"customer_email"`
	CustomerName  string    `json:"customer_name"`
	Reason        string    `json:"reason,omitempty"`
	RequestedAt   time.Time `json:"requested_at"`
}
