package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartcampus/hub/internal/config"
	"github.com/smartcampus/hub/internal/handler"
	"github.com/smartcampus/hub/internal/middleware"
	"github.com/smartcampus/hub/internal/model"
	"github.com/smartcampus/hub/internal/service"
	"github.com/smartcampus/hub/internal/service/mocks"
	"github.com/smartcampus/hub/internal/utils"
)

const testSecret = "router-test-secret"

// middlewareSpy records which routes a middleware ran on and the user id
// visible at that point in the chain.
type middlewareSpy struct {
	paths   []string
	userIDs []uint64
	// when true the spy answers the request itself, standing in for a
	// cache HIT that never reaches the handler
	shortCircuit bool
}

func (s *middlewareSpy) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.paths = append(s.paths, c.Path())
		s.userIDs = append(s.userIDs, middleware.UserID(c))
		if s.shortCircuit {
			return c.NoContent(http.StatusOK)
		}
		return next(c)
	}
}

func newRouterFixture(t *testing.T) (*echo.Echo, *middlewareSpy, *middlewareSpy, *mocks.NotificationRepo) {
	t.Helper()
	notifications := &mocks.NotificationRepo{}
	h := Handlers{
		Auth:          handler.NewAuthHandler(config.Config{JWTSecret: testSecret}, nil, nil, nil),
		Notifications: handler.NewNotificationHandler(service.NewNotificationService(notifications, nil)),
	}
	limiter := &middlewareSpy{}
	cache := &middlewareSpy{shortCircuit: true}
	e := echo.New()
	Register(e, h, testSecret, limiter.middleware, cache.middleware)
	return e, limiter, cache, notifications
}

func bearerFor(t *testing.T, userID uint64, roles ...string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, userID, "user@campus.edu", roles, 15)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func TestCacheAppliesOnlyToFacilityReads(t *testing.T) {
	e, _, cache, notifications := newRouterFixture(t)
	notifications.On("ListByUser", mock.Anything, uint64(7)).
		Return([]model.Notification{{ID: 1, UserID: 7, Title: "Booking Approved"}}, nil)

	auth := bearerFor(t, 7, model.RoleUser)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/facilities", nil)
	req.Header.Set("Authorization", auth)
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"/v1/facilities"}, cache.paths)

	// a per-user read must bypass the cache entirely
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/notifications", nil)
	req.Header.Set("Authorization", auth)
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booking Approved")
	assert.Equal(t, []string{"/v1/facilities"}, cache.paths)
	notifications.AssertCalled(t, "ListByUser", mock.Anything, uint64(7))
}

func TestCacheNeverServesUnauthenticatedRequests(t *testing.T) {
	e, _, cache, _ := newRouterFixture(t)

	// prime the cached route
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/facilities", nil)
	req.Header.Set("Authorization", bearerFor(t, 3, model.RoleUser))
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, cache.paths, 1)

	// without a token the chain must stop at auth, before the cache
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/facilities", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Len(t, cache.paths, 1)
}

func TestRateLimiterSeesAuthenticatedUser(t *testing.T) {
	e, limiter, _, _ := newRouterFixture(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/facilities", nil)
	req.Header.Set("Authorization", bearerFor(t, 42, model.RoleUser))
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, limiter.userIDs, 1)
	assert.Equal(t, uint64(42), limiter.userIDs[0])

	// unauthenticated /v1 traffic is rejected before the limiter runs
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/facilities", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Len(t, limiter.userIDs, 1)
}

func TestRateLimiterCoversAuthRoutes(t *testing.T) {
	e, limiter, _, _ := newRouterFixture(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/auth/google", nil))
	// Google sign-in is not configured in this fixture; the limiter
	// must still have seen the request, keyed anonymously
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	require.Len(t, limiter.paths, 1)
	assert.Equal(t, "/v1/auth/google", limiter.paths[0])
	assert.Equal(t, uint64(0), limiter.userIDs[0])
}
