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

func TestNotificationCreateDefaults(t *testing.T) {
	repo := &mocks.NotificationRepo{}
	var captured *model.Notification
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Notification")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*model.Notification) }).
		Return(nil)
	svc := NewNotificationService(repo, fixedClock{testNow})

	err := svc.Create(context.Background(), &model.Notification{
		UserID:    3,
		Title:     "Welcome",
		Message:   "Your account is ready.",
		Type:      model.NotifSystem,
		Read:      true, // must be overridden
		Reference: model.BookingRef(1),
	})
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.False(t, captured.Read)
	assert.Equal(t, testNow, captured.CreatedAt)
}

func TestNotificationMarkReadNotFound(t *testing.T) {
	repo := &mocks.NotificationRepo{}
	repo.On("MarkRead", mock.Anything, uint64(404), uint64(3)).Return(domain.ErrNotFound)
	svc := NewNotificationService(repo, fixedClock{testNow})

	assert.ErrorIs(t, svc.MarkRead(context.Background(), 404, 3), domain.ErrNotFound)
}

func TestNotificationMarkAllRead(t *testing.T) {
	repo := &mocks.NotificationRepo{}
	repo.On("MarkAllRead", mock.Anything, uint64(3)).Return(int64(4), nil)
	svc := NewNotificationService(repo, fixedClock{testNow})

	n, err := svc.MarkAllRead(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestNotificationCountUnread(t *testing.T) {
	repo := &mocks.NotificationRepo{}
	repo.On("CountUnread", mock.Anything, uint64(3)).Return(int64(2), nil)
	svc := NewNotificationService(repo, fixedClock{testNow})

	n, err := svc.CountUnread(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
