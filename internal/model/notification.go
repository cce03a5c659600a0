package model

import "time"

// Notification types, one per triggering transition.
const (
	NotifBookingApproved     = "BOOKING_APPROVED"
	NotifBookingRejected     = "BOOKING_REJECTED"
	NotifBookingCancelled    = "BOOKING_CANCELLED"
	NotifTicketCreated       = "TICKET_CREATED"
	NotifTicketAssigned      = "TICKET_ASSIGNED"
	NotifTicketStatusChanged = "TICKET_STATUS_CHANGED"
	NotifTicketResolved      = "TICKET_RESOLVED"
	NotifTicketClosed        = "TICKET_CLOSED"
	NotifTicketRejected      = "TICKET_REJECTED"
	NotifCommentAdded        = "COMMENT_ADDED"
	NotifSystem              = "SYSTEM"
)

// Kinds of entities a notification may reference.  Keeping the tags as a
// closed set prevents a notification from pointing at a type the API does
// not serve.
const (
	RefBooking = "BOOKING"
	RefTicket  = "TICKET"
	RefComment = "COMMENT"
)

// Notification is a persisted, read-tracked alert for a single user.
// Reference carries a typed pointer to the entity that triggered it.
// Records are only ever mutated through the read flag.
type Notification struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Reference Reference `json:"reference"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Reference is the typed (kind, id) pair identifying the entity a
// notification points at.
type Reference struct {
	Kind string `json:"kind"`
	ID   uint64 `json:"id"`
}

// BookingRef builds a reference to a booking.
func BookingRef(id uint64) Reference { return Reference{Kind: RefBooking, ID: id} }

// TicketRef builds a reference to a ticket.
func TicketRef(id uint64) Reference { return Reference{Kind: RefTicket, ID: id} }

// CommentRef builds a reference to a comment.
func CommentRef(id uint64) Reference { return Reference{Kind: RefComment, ID: id} }
