package models

import "time"

// Booking statuses. The cancellation core only ever reads these; "cancelled"
// is written through the booking-side cancel path, never by request intake.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a confirmed booking record. Owned by the booking
// storefront; this subsystem treats it as read-only apart from the
// direct booking-cancel path.
type Booking struct {
	ID            string    `bson:"id" json:"id"`                                         // Unique booking identifier (e.g., UUID)
	OrderNumber   string    `bson:"order_number" json:"order_number"`                     // Human-facing order code, stored uppercase
	CustomerEmail string    `bson:"customer_email" json:"customer_email"`                 // Stored lowercase
	CustomerName  string    `bson:"customer_name" json:"customer_name"`                   // Display name as entered at checkout
	BookingDate   string    `bson:"booking_date" json:"booking_date"`                     // "YYYY-MM-DD"
	TripEndDate   string    `bson:"trip_end_date,omitempty" json:"trip_end_date,omitempty"` // "YYYY-MM-DD", empty for single-day bookings
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
