package bookingRepo

import "roamly/models"

// BookingRepository defines read access to booking records plus the single
// booking-side status write (the direct cancel path). Everything else about
// bookings is owned by the storefront.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	GetByOrderAndEmail(orderNumber, email string) (*models.Booking, error)
	UpdateStatus(id, status string) error
}
