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
	"github.com/smartcampus/hub/internal/service/mocks"
)

func newFacilityFixture() (*FacilityService, *mocks.FacilityRepo) {
	repo := &mocks.FacilityRepo{}
	return NewFacilityService(repo, fixedClock{testNow}), repo
}

func TestFacilityCreateDefaultsStatusActive(t *testing.T) {
	svc, repo := newFacilityFixture()
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*model.Facility).ID = 12 }).
		Return(nil)

	f, err := svc.Create(context.Background(), FacilityInput{
		Name: "Physics Lecture Hall", Type: "lecture_hall", Capacity: 120,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), f.ID)
	assert.Equal(t, model.FacilityLectureHall, f.Type)
	assert.Equal(t, model.FacilityActive, f.Status)
	assert.Equal(t, testNow, f.CreatedAt)
	assert.Equal(t, testNow, f.UpdatedAt)
}

func TestFacilityCreateRejectsBadEnums(t *testing.T) {
	svc, repo := newFacilityFixture()

	cases := []struct {
		name string
		in   FacilityInput
	}{
		{"unknown type", FacilityInput{Name: "X", Type: "GYMNASIUM"}},
		{"unknown status", FacilityInput{Name: "X", Type: "LAB", Status: "BROKEN"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in, 1)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFacilityUpdateMissing(t *testing.T) {
	svc, repo := newFacilityFixture()
	repo.On("GetByID", mock.Anything, uint64(77)).
		Return(nil, fmt.Errorf("%w: facility 77", domain.ErrNotFound))

	_, err := svc.Update(context.Background(), 77, FacilityInput{Name: "X", Type: "LAB"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestFacilityUpdateStampsClock(t *testing.T) {
	svc, repo := newFacilityFixture()
	repo.On("GetByID", mock.Anything, uint64(5)).Return(&model.Facility{
		ID: 5, Name: "Old Lab", Type: model.FacilityLab, Status: model.FacilityActive,
	}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	f, err := svc.Update(context.Background(), 5, FacilityInput{
		Name: "Chemistry Lab", Type: "lab", Status: "under_maintenance",
	})
	require.NoError(t, err)
	assert.Equal(t, "Chemistry Lab", f.Name)
	assert.Equal(t, model.FacilityUnderMaintenance, f.Status)
	assert.Equal(t, testNow, f.UpdatedAt)
}

func TestFacilitySearchNormalizesFilters(t *testing.T) {
	svc, repo := newFacilityFixture()
	repo.On("Search", mock.Anything, model.FacilityMeetingRoom, model.FacilityActive, "west wing").
		Return([]model.Facility{{ID: 3, Name: "West Wing Meeting Room"}}, nil)

	got, err := svc.Search(context.Background(), "meeting_room", "active", "west wing")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(3), got[0].ID)
}

func TestFacilitySearchRejectsBadFilters(t *testing.T) {
	svc, repo := newFacilityFixture()

	_, err := svc.Search(context.Background(), "stadium", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.Search(context.Background(), "", "retired", "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
