package service

import (
	"context"
	"fmt"
	"log"

	"github.com/smartcampus/hub/internal/domain"
	"github.com/smartcampus/hub/internal/model"
	"github.com/smartcampus/hub/internal/service/ports"
)

// CommentService manages the append-only discussion thread attached to
// tickets.  Editing is restricted to the author; deletion to the author
// or an admin.
type CommentService struct {
	comments      ports.CommentRepo
	tickets       ports.TicketRepo
	users         ports.UserReader
	notifications ports.NotificationRepo
	clock         Clock
}

// NewCommentService wires a CommentService.
func NewCommentService(comments ports.CommentRepo, tickets ports.TicketRepo, users ports.UserReader, notifications ports.NotificationRepo, clock Clock) *CommentService {
	if clock == nil {
		clock = SystemClock()
	}
	return &CommentService{
		comments:      comments,
		tickets:       tickets,
		users:         users,
		notifications: notifications,
		clock:         clock,
	}
}

// Add appends a comment to a ticket, snapshotting the author's name and
// first role.  The ticket's reporter is notified when the commenter is
// someone else, and the assignee likewise, so a single comment yields
// zero, one or two notifications.
func (s *CommentService) Add(ctx context.Context, ticketID uint64, content string, authorID uint64) (*model.Comment, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	comment := &model.Comment{
		TicketID:   ticketID,
		Content:    content,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		AuthorRole: author.FirstRole(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if ticket.ReportedBy != author.ID {
		s.notify(ctx, &model.Notification{
			UserID:    ticket.ReportedBy,
			Title:     "New Comment",
			Message:   fmt.Sprintf("%s commented on your ticket: %s", author.Name, ticket.Title),
			Type:      model.NotifCommentAdded,
			Reference: model.TicketRef(ticket.ID),
		})
	}
	if ticket.AssignedTo != nil && *ticket.AssignedTo != author.ID {
		s.notify(ctx, &model.Notification{
			UserID:    *ticket.AssignedTo,
			Title:     "New Comment",
			Message:   fmt.Sprintf("%s commented on ticket: %s", author.Name, ticket.Title),
			Type:      model.NotifCommentAdded,
			Reference: model.TicketRef(ticket.ID),
		})
	}
	return comment, nil
}

// Update edits a comment's content.  Only the original author may edit;
// the edited flag is set permanently.
func (s *CommentService) Update(ctx context.Context, commentID uint64, content string, actorID uint64) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actorID {
		return nil, fmt.Errorf("%w: you can only edit your own comments", domain.ErrUnauthorized)
	}

	comment.Content = content
	comment.Edited = true
	comment.UpdatedAt = s.clock.Now()
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment.  The author or any admin may delete; anyone
// else is rejected.
func (s *CommentService) Delete(ctx context.Context, commentID, actorID uint64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID {
		actor, err := s.users.GetByID(ctx, actorID)
		if err != nil {
			return err
		}
		if !actor.HasRole(model.RoleAdmin) {
			return fmt.Errorf("%w: you can only delete your own comments", domain.ErrUnauthorized)
		}
	}
	return s.comments.Delete(ctx, commentID)
}

// ListByTicket returns a ticket's comments, newest first.
func (s *CommentService) ListByTicket(ctx context.Context, ticketID uint64) ([]model.Comment, error) {
	return s.comments.ListByTicket(ctx, ticketID)
}

func (s *CommentService) notify(ctx context.Context, n *model.Notification) {
	n.CreatedAt = s.clock.Now()
	if err := s.notifications.Create(ctx, n); err != nil {
		log.Printf("comment: create notification failed: %v", err)
	}
}
