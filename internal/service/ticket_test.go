package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartcampus/hub/internal/domain"
	"github.com/smartcampus/hub/internal/model"
	"github.com/smartcampus/hub/internal/queue"
	"github.com/smartcampus/hub/internal/service/mocks"
)

func reporterUser() *model.User {
	return &model.User{ID: 3, Email: "dana@campus.edu", Name: "Dana", Roles: []string{model.RoleUser}}
}

func technicianUser() *model.User {
	return &model.User{ID: 9, Email: "sam@campus.edu", Name: "Sam", Roles: []string{model.RoleTechnician}}
}

func openTicket() *model.Ticket {
	return &model.Ticket{
		ID:             21,
		Title:          "Projector flickering",
		Location:       "Building B, room 204",
		Category:       "electrical",
		Description:    "Image drops out every few minutes",
		Priority:       model.PriorityHigh,
		Status:         model.TicketOpen,
		ReportedBy:     3,
		ReportedByName: "Dana",
	}
}

func TestTicketCreate(t *testing.T) {
	tickets := &mocks.TicketRepo{}
	users := &mocks.UserReader{}
	users.On("GetByID", mock.Anything, uint64(3)).Return(reporterUser(), nil)
	tickets.On("Create", mock.Anything, mock.AnythingOfType("*model.Ticket")).
		Run(func(args mock.Arguments) { args.Get(1).(*model.Ticket).ID = 21 }).
		Return(nil)
	svc := NewTicketService(tickets, &mocks.FacilityRepo{}, users, &mocks.NotificationRepo{}, nil, fixedClock{testNow})

	created, err := svc.Create(context.Background(), CreateTicketInput{
		Title:       "Projector flickering",
		Location:    "Building B, room 204",
		Category:    "electrical",
		Description: "Image drops out every few minutes",
		Priority:    "high",
		ReporterID:  3,
	})
	require.NoError(t, err)
	// status is forced to OPEN no matter what the caller sends
	assert.Equal(t, model.TicketOpen, created.Status)
	assert.Equal(t, model.PriorityHigh, created.Priority)
	assert.Equal(t, "Dana", created.ReportedByName)
	assert.Equal(t, testNow, created.CreatedAt)
}

func TestTicketCreateUnknownPriority(t *testing.T) {
	svc := NewTicketService(&mocks.TicketRepo{}, &mocks.FacilityRepo{}, &mocks.UserReader{}, &mocks.NotificationRepo{}, nil, fixedClock{testNow})

	_, err := svc.Create(context.Background(), CreateTicketInput{Title: "x", Priority: "urgent", ReporterID: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestTicketCreateTooManyAttachments(t *testing.T) {
	svc := NewTicketService(&mocks.TicketRepo{}, &mocks.FacilityRepo{}, &mocks.UserReader{}, &mocks.NotificationRepo{}, nil, fixedClock{testNow})

	_, err := svc.Create(context.Background(), CreateTicketInput{
		Title:          "x",
		Priority:       "low",
		ReporterID:     3,
		AttachmentURLs: []string{"/uploads/a", "/uploads/b", "/uploads/c", "/uploads/d"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestTicketAssign(t *testing.T) {
	tickets := &mocks.TicketRepo{}
	users := &mocks.UserReader{}
	notifications := &mocks.NotificationRepo{}
	publisher := &mocks.EventPublisher{}

	users.On("GetByID", mock.Anything, uint64(9)).Return(technicianUser(), nil)
	tickets.On("GetByID", mock.Anything, uint64(21)).Return(openTicket(), nil)
	tickets.On("Update", mock.Anything, mock.AnythingOfType("*model.Ticket")).Return(nil)

	var notified []*model.Notification
	notifications.On("Create", mock.Anything, mock.AnythingOfType("*model.Notification")).
		Run(func(args mock.Arguments) { notified = append(notified, args.Get(1).(*model.Notification)) }).
		Return(nil).Twice()
	publisher.On("Publish", mock.Anything, queue.KeyTicketAssigned, mock.Anything).Return(nil).Once()

	svc := NewTicketService(tickets, &mocks.FacilityRepo{}, users, notifications, publisher, fixedClock{testNow})

	assigned, err := svc.Assign(context.Background(), 21, 9)
	require.NoError(t, err)
	assert.Equal(t, model.TicketInProgress, assigned.Status)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, uint64(9), *assigned.AssignedTo)
	assert.Equal(t, "Sam", assigned.AssignedToName)

	// exactly two notifications: reporter first, then technician
	require.Len(t, notified, 2)
	assert.Equal(t, uint64(3), notified[0].UserID)
	assert.Contains(t, notified[0].Message, "Sam")
	assert.Equal(t, uint64(9), notified[1].UserID)
	for _, n := range notified {
		assert.Equal(t, model.NotifTicketAssigned, n.Type)
		assert.Equal(t, model.TicketRef(21), n.Reference)
	}
	notifications.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestTicketUpdateStatus(t *testing.T) {
	cases := []struct {
		status      string
		notifType   string
		wantMessage string
	}{
		{"resolved", model.NotifTicketResolved, "has been resolved"},
		{"closed", model.NotifTicketClosed, "has been closed"},
		{"rejected", model.NotifTicketRejected, "Reason: out of scope"},
		{"open", model.NotifTicketStatusChanged, "status changed to OPEN"},
		{"in_progress", model.NotifTicketStatusChanged, "status changed to IN_PROGRESS"},
	}
	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			tickets := &mocks.TicketRepo{}
			notifications := &mocks.NotificationRepo{}
			tickets.On("GetByID", mock.Anything, uint64(21)).Return(openTicket(), nil)
			tickets.On("Update", mock.Anything, mock.AnythingOfType("*model.Ticket")).Return(nil)

			var captured *model.Notification
			notifications.On("Create", mock.Anything, mock.AnythingOfType("*model.Notification")).
				Run(func(args mock.Arguments) { captured = args.Get(1).(*model.Notification) }).
				Return(nil).Once()

			svc := NewTicketService(tickets, &mocks.FacilityRepo{}, &mocks.UserReader{}, notifications, nil, fixedClock{testNow})

			updated, err := svc.UpdateStatus(context.Background(), 21, tc.status, "replaced the cable", "out of scope")
			require.NoError(t, err)

			require.NotNil(t, captured)
			assert.Equal(t, uint64(3), captured.UserID) // always the reporter
			assert.Equal(t, tc.notifType, captured.Type)
			assert.Contains(t, captured.Message, tc.wantMessage)

			switch updated.Status {
			case model.TicketResolved:
				assert.Equal(t, "replaced the cable", updated.ResolutionNotes)
				require.NotNil(t, updated.ResolvedAt)
				assert.Equal(t, testNow, *updated.ResolvedAt)
			case model.TicketClosed:
				require.NotNil(t, updated.ClosedAt)
				assert.Equal(t, testNow, *updated.ClosedAt)
			case model.TicketRejected:
				assert.Equal(t, "out of scope", updated.RejectionReason)
			}
			notifications.AssertExpectations(t)
		})
	}
}

// Transitions are unrestricted: a closed ticket can legally go back to
// open, so status updates never fail on the current state.
func TestTicketUpdateStatusPermissive(t *testing.T) {
	closed := openTicket()
	closed.Status = model.TicketClosed

	tickets := &mocks.TicketRepo{}
	notifications := &mocks.NotificationRepo{}
	tickets.On("GetByID", mock.Anything, uint64(21)).Return(closed, nil)
	tickets.On("Update", mock.Anything, mock.Anything).Return(nil)
	notifications.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewTicketService(tickets, &mocks.FacilityRepo{}, &mocks.UserReader{}, notifications, nil, fixedClock{testNow})

	updated, err := svc.UpdateStatus(context.Background(), 21, "open", "", "")
	require.NoError(t, err)
	assert.Equal(t, model.TicketOpen, updated.Status)
}

func TestTicketUpdateStatusUnknown(t *testing.T) {
	svc := NewTicketService(&mocks.TicketRepo{}, &mocks.FacilityRepo{}, &mocks.UserReader{}, &mocks.NotificationRepo{}, nil, fixedClock{testNow})

	_, err := svc.UpdateStatus(context.Background(), 21, "paused", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestTicketDeleteNotFound(t *testing.T) {
	tickets := &mocks.TicketRepo{}
	tickets.On("Delete", mock.Anything, uint64(404)).Return(fmt.Errorf("%w: ticket 404", domain.ErrNotFound))
	svc := NewTicketService(tickets, &mocks.FacilityRepo{}, &mocks.UserReader{}, &mocks.NotificationRepo{}, nil, fixedClock{testNow})

	err := svc.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
