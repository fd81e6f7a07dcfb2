package cancel

import "time"

const dateLayout = "2006-01-02"

// IsExpired decides whether cancellation authorization for a booking is still
// usable at the given instant. The reference date is the trip end date when
// present, otherwise the booking date; the cutoff is the end of the following
// calendar day (23:59:59 local). Expired means strictly after the cutoff.
//
// Dates are the stored "YYYY-MM-DD" strings. Unparseable dates fail closed:
// a booking whose dates cannot be read must not be cancellable through an
// unauthenticated channel.
func IsExpired(bookingDate, tripEndDate string, now time.Time) bool {
	reference := tripEndDate
	if reference == "" {
		reference = bookingDate
	}

	ref, err := time.ParseInLocation(dateLayout, reference, now.Location())
	if err != nil {
		if reference == bookingDate {
			return true
		}
		ref, err = time.ParseInLocation(dateLayout, bookingDate, now.Location())
		if err != nil {
			return true
		}
	}

	cutoff := time.Date(ref.Year(), ref.Month(), ref.Day()+1, 23, 59, 59, 0, now.Location())
	return now.After(cutoff)
}
