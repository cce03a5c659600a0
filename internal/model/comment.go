package model

import "time"

// Comment is an append-only discussion entry attached to a ticket.  The
// author's name and first role are snapshotted at creation time so the
// thread remains readable after role changes.
type Comment struct {
	ID         uint64    `json:"id"`
	TicketID   uint64    `json:"ticket_id"`
	Content    string    `json:"content"`
	AuthorID   uint64    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	AuthorRole string    `json:"author_role"`
	Edited     bool      `json:"edited"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
