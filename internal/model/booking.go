package model

import "time"

// Booking statuses.  PENDING and APPROVED bookings occupy their time slot;
// REJECTED and CANCELLED are terminal and release it.
const (
	BookingPending   = "PENDING"
	BookingApproved  = "APPROVED"
	BookingRejected  = "REJECTED"
	BookingCancelled = "CANCELLED"
)

// Booking records a reservation of a facility for a date and a half-open
// [start, end) time interval.  FacilityName and UserName are denormalized
// at creation time so listings do not need joins.  Date uses the
// YYYY-MM-DD layout and the time fields use zero-padded HH:MM, which makes
// lexicographic comparison equivalent to temporal comparison.
type Booking struct {
	ID                 uint64    `json:"id"`
	FacilityID         uint64    `json:"facility_id"`
	FacilityName       string    `json:"facility_name"`
	UserID             uint64    `json:"user_id"`
	UserName           string    `json:"user_name"`
	Date               string    `json:"date"`
	StartTime          string    `json:"start_time"`
	EndTime            string    `json:"end_time"`
	Purpose            string    `json:"purpose"`
	ExpectedAttendees  int       `json:"expected_attendees"`
	Status             string    `json:"status"`
	ReviewedBy         *uint64   `json:"reviewed_by,omitempty"`
	RejectionReason    string    `json:"rejection_reason,omitempty"`
	CancellationReason string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Active reports whether the booking still occupies its time slot.
func (b *Booking) Active() bool {
	return b.Status == BookingPending || b.Status == BookingApproved
}

// Overlaps implements the half-open interval overlap test used for
// conflict detection: [aStart, aEnd) and [bStart, bEnd) overlap when
// aStart < bEnd and aEnd > bStart.  Touching boundaries (aEnd == bStart)
// do not overlap.  Operands must be zero-padded HH:MM strings.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidClock reports whether s is a well-formed zero-padded HH:MM value.
func ValidClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
