package model

import (
	"strings"
	"time"
)

// Facility types cover both bookable rooms and loanable equipment.
const (
	FacilityLectureHall = "LECTURE_HALL"
	FacilityLab         = "LAB"
	FacilityMeetingRoom = "MEETING_ROOM"
	FacilityAuditorium  = "AUDITORIUM"
	FacilityProjector   = "PROJECTOR"
	FacilityCamera      = "CAMERA"
	FacilityLaptop      = "LAPTOP"
	FacilityWhiteboard  = "WHITEBOARD"
	FacilityOther       = "OTHER_EQUIPMENT"
)

// Facility operational statuses.  Only ACTIVE facilities accept bookings.
const (
	FacilityActive           = "ACTIVE"
	FacilityOutOfService     = "OUT_OF_SERVICE"
	FacilityUnderMaintenance = "UNDER_MAINTENANCE"
)

// AvailabilityWindow describes a weekly slot during which a facility is
// normally available.  The windows are advisory for the frontend; the
// reservation logic does not enforce them.
type AvailabilityWindow struct {
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Facility represents a bookable or reportable campus resource as stored
// in the `facilities` table.  Amenities, ImageURLs and
// AvailabilityWindows are persisted as JSON columns.
type Facility struct {
	ID                  uint64               `json:"id"`
	Name                string               `json:"name"`
	Type                string               `json:"type"`
	Capacity            int                  `json:"capacity"`
	Location            string               `json:"location"`
	Building            string               `json:"building"`
	Floor               string               `json:"floor"`
	Description         string               `json:"description"`
	Amenities           []string             `json:"amenities"`
	ImageURLs           []string             `json:"image_urls"`
	Status              string               `json:"status"`
	AvailabilityWindows []AvailabilityWindow `json:"availability_windows"`
	CreatedBy           uint64               `json:"created_by"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// ParseFacilityType normalises a facility type string.  It returns the
// canonical constant and true, or "" and false for unknown values.
func ParseFacilityType(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case FacilityLectureHall:
		return FacilityLectureHall, true
	case FacilityLab:
		return FacilityLab, true
	case FacilityMeetingRoom:
		return FacilityMeetingRoom, true
	case FacilityAuditorium:
		return FacilityAuditorium, true
	case FacilityProjector:
		return FacilityProjector, true
	case FacilityCamera:
		return FacilityCamera, true
	case FacilityLaptop:
		return FacilityLaptop, true
	case FacilityWhiteboard:
		return FacilityWhiteboard, true
	case FacilityOther:
		return FacilityOther, true
	}
	return "", false
}

// ParseFacilityStatus normalises a facility status string.
func ParseFacilityStatus(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case FacilityActive:
		return FacilityActive, true
	case FacilityOutOfService:
		return FacilityOutOfService, true
	case FacilityUnderMaintenance:
		return FacilityUnderMaintenance, true
	}
	return "", false
}
