package service

import (
	"context"
	"fmt"
	"log"

	"github.com/smartcampus/hub/internal/domain"
	"github.com/smartcampus/hub/internal/model"
	"github.com/smartcampus/hub/internal/queue"
	"github.com/smartcampus/hub/internal/service/ports"
)

// ticketNotice pairs the notification type and message for a ticket
// status change.  Keeping the mapping in a table makes the set of
// handled statuses explicit; statuses without an entry fall back to the
// generic status-changed notice.
type ticketNotice struct {
	Type    string
	Message func(t *model.Ticket) string
}

var ticketStatusNotices = map[string]ticketNotice{
	model.TicketResolved: {
		Type:    model.NotifTicketResolved,
		Message: func(t *model.Ticket) string { return fmt.Sprintf("Your ticket '%s' has been resolved.", t.Title) },
	},
	model.TicketClosed: {
		Type:    model.NotifTicketClosed,
		Message: func(t *model.Ticket) string { return fmt.Sprintf("Your ticket '%s' has been closed.", t.Title) },
	},
	model.TicketRejected: {
		Type: model.NotifTicketRejected,
		Message: func(t *model.Ticket) string {
			return fmt.Sprintf("Your ticket '%s' has been rejected. Reason: %s", t.Title, t.RejectionReason)
		},
	},
}

// TicketService drives the maintenance ticket workflow: creation,
// assignment, status updates and deletion.  Status transitions are
// deliberately unrestricted; an authorized actor may move a ticket to
// any status directly.
type TicketService struct {
	tickets       ports.TicketRepo
	facilities    ports.FacilityRepo
	users         ports.UserReader
	notifications ports.NotificationRepo
	publisher     ports.EventPublisher
	clock         Clock
}

// NewTicketService wires a TicketService.  publisher may be nil.
func NewTicketService(tickets ports.TicketRepo, facilities ports.FacilityRepo, users ports.UserReader, notifications ports.NotificationRepo, publisher ports.EventPublisher, clock Clock) *TicketService {
	if clock == nil {
		clock = SystemClock()
	}
	return &TicketService{
		tickets:       tickets,
		facilities:    facilities,
		users:         users,
		notifications: notifications,
		publisher:     publisher,
		clock:         clock,
	}
}

// CreateTicketInput carries the caller-supplied fields of a new ticket.
type CreateTicketInput struct {
	Title          string
	FacilityID     *uint64
	Location       string
	Category       string
	Description    string
	Priority       string
	ReporterID     uint64
	ContactEmail   string
	ContactPhone   string
	AttachmentURLs []string
}

// Create persists a new ticket.  The status is forced to OPEN regardless
// of input, the priority must parse to a known value, and at most three
// attachments are accepted.
func (s *TicketService) Create(ctx context.Context, in CreateTicketInput) (*model.Ticket, error) {
	priority, ok := model.ParseTicketPriority(in.Priority)
	if !ok {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidArgument, in.Priority)
	}
	if len(in.AttachmentURLs) > model.MaxTicketAttachments {
		return nil, fmt.Errorf("%w: at most %d attachments allowed", domain.ErrInvalidArgument, model.MaxTicketAttachments)
	}

	reporter, err := s.users.GetByID(ctx, in.ReporterID)
	if err != nil {
		return nil, err
	}

	var facilityName string
	if in.FacilityID != nil {
		facility, err := s.facilities.GetByID(ctx, *in.FacilityID)
		if err != nil {
			return nil, err
		}
		facilityName = facility.Name
	}

	now := s.clock.Now()
	ticket := &model.Ticket{
		Title:          in.Title,
		FacilityID:     in.FacilityID,
		FacilityName:   facilityName,
		Location:       in.Location,
		Category:       in.Category,
		Description:    in.Description,
		Priority:       priority,
		Status:         model.TicketOpen,
		ReportedBy:     reporter.ID,
		ReportedByName: reporter.Name,
		ContactEmail:   in.ContactEmail,
		ContactPhone:   in.ContactPhone,
		AttachmentURLs: in.AttachmentURLs,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Assign sets the ticket's assignee, forces the status to IN_PROGRESS
// and emits exactly two notifications: one to the reporter and one to
// the technician.
func (s *TicketService) Assign(ctx context.Context, ticketID, technicianID uint64) (*model.Ticket, error) {
	technician, err := s.users.GetByID(ctx, technicianID)
	if err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	ticket.AssignedTo = &technician.ID
	ticket.AssignedToName = technician.Name
	ticket.Status = model.TicketInProgress
	ticket.UpdatedAt = s.clock.Now()
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.notify(ctx, &model.Notification{
		UserID:    ticket.ReportedBy,
		Title:     "Ticket Assigned",
		Message:   fmt.Sprintf("Your ticket '%s' has been assigned to %s", ticket.Title, technician.Name),
		Type:      model.NotifTicketAssigned,
		Reference: model.TicketRef(ticket.ID),
	})
	s.notify(ctx, &model.Notification{
		UserID:    technician.ID,
		Title:     "New Ticket Assignment",
		Message:   fmt.Sprintf("You have been assigned to ticket: %s", ticket.Title),
		Type:      model.NotifTicketAssigned,
		Reference: model.TicketRef(ticket.ID),
	})
	s.publish(ctx, queue.KeyTicketAssigned, queue.TicketEventFrom(ticket))
	return ticket, nil
}

// UpdateStatus sets the ticket to the requested status.  RESOLVED
// records the resolution notes and timestamp, CLOSED the closing
// timestamp, REJECTED the rejection reason.  Exactly one notification is
// emitted to the reporter, chosen from the status notice table.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID uint64, status, resolutionNotes, rejectionReason string) (*model.Ticket, error) {
	newStatus, ok := model.ParseTicketStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown ticket status %q", domain.ErrInvalidArgument, status)
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	ticket.Status = newStatus
	ticket.UpdatedAt = now
	switch newStatus {
	case model.TicketResolved:
		ticket.ResolutionNotes = resolutionNotes
		ticket.ResolvedAt = &now
	case model.TicketClosed:
		ticket.ClosedAt = &now
	case model.TicketRejected:
		ticket.RejectionReason = rejectionReason
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	notice, ok := ticketStatusNotices[newStatus]
	if !ok {
		notice = ticketNotice{
			Type: model.NotifTicketStatusChanged,
			Message: func(t *model.Ticket) string {
				return fmt.Sprintf("Your ticket '%s' status changed to %s", t.Title, t.Status)
			},
		}
	}
	s.notify(ctx, &model.Notification{
		UserID:    ticket.ReportedBy,
		Title:     "Ticket Update",
		Message:   notice.Message(ticket),
		Type:      notice.Type,
		Reference: model.TicketRef(ticket.ID),
	})
	return ticket, nil
}

// Delete removes a ticket, failing with domain.ErrNotFound when absent.
func (s *TicketService) Delete(ctx context.Context, ticketID uint64) error {
	return s.tickets.Delete(ctx, ticketID)
}

// GetByID returns a single ticket or domain.ErrNotFound.
func (s *TicketService) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

// ListAll returns every ticket.
func (s *TicketService) ListAll(ctx context.Context) ([]model.Ticket, error) {
	return s.tickets.ListAll(ctx)
}

// ListByReporter returns the tickets reported by a user.
func (s *TicketService) ListByReporter(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	return s.tickets.ListByReporter(ctx, userID)
}

// ListByAssignee returns the tickets assigned to a technician.
func (s *TicketService) ListByAssignee(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	return s.tickets.ListByAssignee(ctx, userID)
}

// ListByStatus returns the tickets in the given status.
func (s *TicketService) ListByStatus(ctx context.Context, status string) ([]model.Ticket, error) {
	parsed, ok := model.ParseTicketStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown ticket status %q", domain.ErrInvalidArgument, status)
	}
	return s.tickets.ListByStatus(ctx, parsed)
}

func (s *TicketService) notify(ctx context.Context, n *model.Notification) {
	n.CreatedAt = s.clock.Now()
	if err := s.notifications.Create(ctx, n); err != nil {
		log.Printf("ticket: create notification failed: %v", err)
	}
}

func (s *TicketService) publish(ctx context.Context, key string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, event); err != nil {
		log.Printf("ticket: publish %s failed: %v", key, err)
	}
}
