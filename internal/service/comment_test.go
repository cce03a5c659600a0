package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartcampus/hub/internal/domain"
	"github.com/smartcampus/hub/internal/model"
	"github.com/smartcampus/hub/internal/service/mocks"
)

func assignedTicket() *model.Ticket {
	t := openTicket()
	assignee := uint64(9)
	t.AssignedTo = &assignee
	t.AssignedToName = "Sam"
	t.Status = model.TicketInProgress
	return t
}

func newCommentFixture(actor *model.User) (*CommentService, *mocks.CommentRepo, *mocks.TicketRepo, *mocks.NotificationRepo) {
	comments := &mocks.CommentRepo{}
	tickets := &mocks.TicketRepo{}
	users := &mocks.UserReader{}
	notifications := &mocks.NotificationRepo{}
	if actor != nil {
		users.On("GetByID", mock.Anything, actor.ID).Return(actor, nil)
	}
	svc := NewCommentService(comments, tickets, users, notifications, fixedClock{testNow})
	return svc, comments, tickets, notifications
}

func TestCommentAddByThirdParty(t *testing.T) {
	admin := &model.User{ID: 1, Name: "Avery", Roles: []string{model.RoleAdmin}}
	svc, comments, tickets, notifications := newCommentFixture(admin)

	tickets.On("GetByID", mock.Anything, uint64(21)).Return(assignedTicket(), nil)
	comments.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).
		Run(func(args mock.Arguments) { args.Get(1).(*model.Comment).ID = 5 }).
		Return(nil)

	var notified []*model.Notification
	notifications.On("Create", mock.Anything, mock.AnythingOfType("*model.Notification")).
		Run(func(args mock.Arguments) { notified = append(notified, args.Get(1).(*model.Notification)) }).
		Return(nil).Twice()

	comment, err := svc.Add(context.Background(), 21, "Ordered a replacement bulb", 1)
	require.NoError(t, err)
	assert.Equal(t, "Avery", comment.AuthorName)
	assert.Equal(t, model.RoleAdmin, comment.AuthorRole)
	assert.False(t, comment.Edited)

	// commenter is neither reporter nor assignee: both get notified
	require.Len(t, notified, 2)
	assert.Equal(t, uint64(3), notified[0].UserID)
	assert.Equal(t, uint64(9), notified[1].UserID)
	notifications.AssertExpectations(t)
}

func TestCommentAddByReporterNotifiesAssigneeOnly(t *testing.T) {
	reporter := reporterUser()
	svc, comments, tickets, notifications := newCommentFixture(reporter)

	tickets.On("GetByID", mock.Anything, uint64(21)).Return(assignedTicket(), nil)
	comments.On("Create", mock.Anything, mock.Anything).Return(nil)

	var captured *model.Notification
	notifications.On("Create", mock.Anything, mock.AnythingOfType("*model.Notification")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*model.Notification) }).
		Return(nil).Once()

	_, err := svc.Add(context.Background(), 21, "Still flickering today", 3)
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, uint64(9), captured.UserID)
	notifications.AssertExpectations(t)
}

func TestCommentAddByReporterOnUnassignedTicket(t *testing.T) {
	reporter := reporterUser()
	svc, comments, tickets, notifications := newCommentFixture(reporter)

	tickets.On("GetByID", mock.Anything, uint64(21)).Return(openTicket(), nil)
	comments.On("Create", mock.Anything, mock.Anything).Return(nil)

	// no one to notify: zero notifications
	_, err := svc.Add(context.Background(), 21, "Any update?", 3)
	require.NoError(t, err)
	notifications.AssertExpectations(t)
}

func TestCommentAddTicketNotFound(t *testing.T) {
	svc, _, tickets, _ := newCommentFixture(nil)
	tickets.On("GetByID", mock.Anything, uint64(404)).Return(nil, domain.ErrNotFound)

	_, err := svc.Add(context.Background(), 404, "hello", 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCommentUpdateByAuthor(t *testing.T) {
	svc, comments, _, _ := newCommentFixture(nil)
	existing := &model.Comment{ID: 5, TicketID: 21, Content: "old", AuthorID: 3, AuthorName: "Dana"}
	comments.On("GetByID", mock.Anything, uint64(5)).Return(existing, nil)
	comments.On("Update", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)

	updated, err := svc.Update(context.Background(), 5, "new text", 3)
	require.NoError(t, err)
	assert.Equal(t, "new text", updated.Content)
	assert.True(t, updated.Edited)
	assert.Equal(t, testNow, updated.UpdatedAt)
}

func TestCommentUpdateByOtherUser(t *testing.T) {
	svc, comments, _, _ := newCommentFixture(nil)
	existing := &model.Comment{ID: 5, TicketID: 21, Content: "old", AuthorID: 3}
	comments.On("GetByID", mock.Anything, uint64(5)).Return(existing, nil)

	_, err := svc.Update(context.Background(), 5, "defaced", 9)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	// the record was never written
	comments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Equal(t, "old", existing.Content)
	assert.False(t, existing.Edited)
}

func TestCommentDeleteByAuthor(t *testing.T) {
	svc, comments, _, _ := newCommentFixture(nil)
	comments.On("GetByID", mock.Anything, uint64(5)).Return(&model.Comment{ID: 5, AuthorID: 3}, nil)
	comments.On("Delete", mock.Anything, uint64(5)).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), 5, 3))
}

func TestCommentDeleteByAdmin(t *testing.T) {
	admin := &model.User{ID: 1, Name: "Avery", Roles: []string{model.RoleAdmin}}
	svc, comments, _, _ := newCommentFixture(admin)
	comments.On("GetByID", mock.Anything, uint64(5)).Return(&model.Comment{ID: 5, AuthorID: 3}, nil)
	comments.On("Delete", mock.Anything, uint64(5)).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), 5, 1))
}

func TestCommentDeleteByOtherUser(t *testing.T) {
	other := &model.User{ID: 9, Name: "Sam", Roles: []string{model.RoleTechnician}}
	svc, comments, _, _ := newCommentFixture(other)
	comments.On("GetByID", mock.Anything, uint64(5)).Return(&model.Comment{ID: 5, AuthorID: 3}, nil)

	err := svc.Delete(context.Background(), 5, 9)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
