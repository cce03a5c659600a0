package model

import (
	"strings"
	"time"
)

// Ticket priorities.
const (
	PriorityLow      = "LOW"
	PriorityMedium   = "MEDIUM"
	PriorityHigh     = "HIGH"
	PriorityCritical = "CRITICAL"
)

// Ticket statuses.  Transitions are deliberately unrestricted: an
// authorized actor may set any status directly, and assignment forces
// IN_PROGRESS.
const (
	TicketOpen       = "OPEN"
	TicketInProgress = "IN_PROGRESS"
	TicketResolved   = "RESOLVED"
	TicketClosed     = "CLOSED"
	TicketRejected   = "REJECTED"
)

// MaxTicketAttachments caps the number of attachment references stored
// per ticket.
const MaxTicketAttachments = 3

// Ticket is a reported maintenance issue, optionally tied to a facility.
// AttachmentURLs is persisted as a JSON column.
type Ticket struct {
	ID              uint64     `json:"id"`
	Title           string     `json:"title"`
	FacilityID      *uint64    `json:"facility_id,omitempty"`
	FacilityName    string     `json:"facility_name,omitempty"`
	Location        string     `json:"location"`
	Category        string     `json:"category"`
	Description     string     `json:"description"`
	Priority        string     `json:"priority"`
	Status          string     `json:"status"`
	ReportedBy      uint64     `json:"reported_by"`
	ReportedByName  string     `json:"reported_by_name"`
	AssignedTo      *uint64    `json:"assigned_to,omitempty"`
	AssignedToName  string     `json:"assigned_to_name,omitempty"`
	ContactEmail    string     `json:"contact_email,omitempty"`
	ContactPhone    string     `json:"contact_phone,omitempty"`
	AttachmentURLs  []string   `json:"attachment_urls"`
	ResolutionNotes string     `json:"resolution_notes,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
}

// ParseTicketPriority normalises a priority string.
func ParseTicketPriority(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	case PriorityCritical:
		return PriorityCritical, true
	}
	return "", false
}

// ParseTicketStatus normalises a ticket status string.
func ParseTicketStatus(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case TicketOpen:
		return TicketOpen, true
	case TicketInProgress:
		return TicketInProgress, true
	case TicketResolved:
		return TicketResolved, true
	case TicketClosed:
		return TicketClosed, true
	case TicketRejected:
		return TicketRejected, true
	}
	return "", false
}
