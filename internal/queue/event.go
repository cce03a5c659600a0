// Package queue defines the domain events exchanged over the message
// broker and the publisher/consumer plumbing around them.  Events carry
// enough detail for downstream consumers to log or trigger integrations
// without querying the primary database.
package queue

import (
	"time"

	"github.com/smartcampus/hub/internal/model"
)

// Routing keys double as queue names on the default exchange.
const (
	KeyBookingApproved = "booking.approved"
	KeyBookingRejected = "booking.rejected"
	KeyTicketAssigned  = "ticket.assigned"
)

// BookingEvent is published when a booking review decision is made.
type BookingEvent struct {
	BookingID    uint64 `json:"booking_id"`
	FacilityID   uint64 `json:"facility_id"`
	FacilityName string `json:"facility_name"`
	UserID       uint64 `json:"user_id"`
	UserName     string `json:"user_name"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Status       string `json:"status"`
	Reason       string `json:"reason,omitempty"`
	OccurredAt   string `json:"occurred_at"`
}

// BookingEventFrom builds a BookingEvent snapshot of a booking.
func BookingEventFrom(b *model.Booking) BookingEvent {
	reason := b.RejectionReason
	if reason == "" {
		reason = b.CancellationReason
	}
	return BookingEvent{
		BookingID:    b.ID,
		FacilityID:   b.FacilityID,
		FacilityName: b.FacilityName,
		UserID:       b.UserID,
		UserName:     b.UserName,
		Date:         b.Date,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       b.Status,
		Reason:       reason,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}
}

// TicketEvent is published when a ticket is assigned to a technician.
type TicketEvent struct {
	TicketID     uint64 `json:"ticket_id"`
	Title        string `json:"title"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	ReportedBy   uint64 `json:"reported_by"`
	AssignedTo   uint64 `json:"assigned_to,omitempty"`
	AssignedName string `json:"assigned_name,omitempty"`
	OccurredAt   string `json:"occurred_at"`
}

// TicketEventFrom builds a TicketEvent snapshot of a ticket.
func TicketEventFrom(t *model.Ticket) TicketEvent {
	ev := TicketEvent{
		TicketID:     t.ID,
		Title:        t.Title,
		Priority:     t.Priority,
		Status:       t.Status,
		ReportedBy:   t.ReportedBy,
		AssignedName: t.AssignedToName,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if t.AssignedTo != nil {
		ev.AssignedTo = *t.AssignedTo
	}
	return ev
}
