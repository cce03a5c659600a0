package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartcampus/hub/internal/config"
	"github.com/smartcampus/hub/internal/model"
)

type userStoreMock struct{ mock.Mock }

func (m *userStoreMock) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *userStoreMock) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *userStoreMock) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *userStoreMock) ListAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *userStoreMock) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	args := m.Called(ctx, role)
	if v, ok := args.Get(0).([]model.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *userStoreMock) Update(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

type tokenStoreMock struct{ mock.Mock }

func (m *tokenStoreMock) Store(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error {
	return m.Called(ctx, userID, tokenHash, expiresAt).Error(0)
}

func (m *tokenStoreMock) Validate(ctx context.Context, tokenHash string, now time.Time) (uint64, error) {
	args := m.Called(ctx, tokenHash, now)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *tokenStoreMock) Revoke(ctx context.Context, tokenHash string, now time.Time) error {
	return m.Called(ctx, tokenHash, now).Error(0)
}

func (m *tokenStoreMock) RevokeAllForUser(ctx context.Context, userID uint64, now time.Time) error {
	return m.Called(ctx, userID, now).Error(0)
}

func newAuthFixture() (*AuthHandler, *userStoreMock, *tokenStoreMock) {
	users := &userStoreMock{}
	tokens := &tokenStoreMock{}
	cfg := config.Config{JWTSecret: "auth-test-secret", AccessTTLMin: 15, RefreshTTLDays: 7}
	return NewAuthHandler(cfg, users, tokens, nil), users, tokens
}

func rolesUpdateContext(e *echo.Echo, body string, rec *httptest.ResponseRecorder, id string) echo.Context {
	req := httptest.NewRequest(http.MethodPut, "/v1/users/"+id+"/roles", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestUpdateRolesRevokesRefreshTokens(t *testing.T) {
	h, users, tokens := newAuthFixture()
	users.On("GetByID", mock.Anything, uint64(9)).
		Return(&model.User{ID: 9, Email: "tech@campus.edu", Roles: []string{model.RoleUser}}, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)
	tokens.On("RevokeAllForUser", mock.Anything, uint64(9), mock.Anything).Return(nil)

	e := newEcho()
	rec := httptest.NewRecorder()
	c := rolesUpdateContext(e, `{"roles":["technician"]}`, rec, "9")

	require.NoError(t, h.UpdateRoles(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), model.RoleTechnician)

	// a demoted or promoted account must not refresh its way back to
	// the old role claims
	tokens.AssertCalled(t, "RevokeAllForUser", mock.Anything, uint64(9), mock.Anything)
	updated := users.Calls[1].Arguments.Get(1).(*model.User)
	assert.Equal(t, []string{model.RoleTechnician}, updated.Roles)
}

func TestUpdateRolesUnknownRoleLeavesTokensAlone(t *testing.T) {
	h, _, tokens := newAuthFixture()

	e := newEcho()
	rec := httptest.NewRecorder()
	c := rolesUpdateContext(e, `{"roles":["superuser"]}`, rec, "9")

	require.NoError(t, h.UpdateRoles(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	tokens.AssertNotCalled(t, "RevokeAllForUser", mock.Anything, mock.Anything, mock.Anything)
}
