package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcampus/hub/internal/middleware"
	"github.com/smartcampus/hub/internal/model"
	"github.com/smartcampus/hub/internal/service"
)

// BookingHandler exposes the reservation endpoints.
type BookingHandler struct {
	Bookings *service.BookingService
}

func NewBookingHandler(s *service.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: s}
}

type createBookingReq struct {
	FacilityID        uint64 `json:"facility_id" validate:"required"`
	Date              string `json:"date" validate:"required"`
	StartTime         string `json:"start_time" validate:"required"`
	EndTime           string `json:"end_time" validate:"required"`
	Purpose           string `json:"purpose"`
	ExpectedAttendees int    `json:"expected_attendees" validate:"gte=0"`
}

type reasonReq struct {
	Reason string `json:"reason"`
}

// Create books a facility slot for the authenticated user.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	b, err := h.Bookings.Create(c.Request().Context(), service.CreateBookingInput{
		FacilityID:        req.FacilityID,
		UserID:            middleware.UserID(c),
		Date:              req.Date,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Purpose:           req.Purpose,
		ExpectedAttendees: req.ExpectedAttendees,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// Get returns one booking.  Users may only read their own bookings;
// admins may read any.
func (h *BookingHandler) Get(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	b, err := h.Bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	if b.UserID != middleware.UserID(c) && !middleware.HasRole(c, model.RoleAdmin) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, b)
}

// ListMine returns the authenticated user's bookings.
func (h *BookingHandler) ListMine(c echo.Context) error {
	bs, err := h.Bookings.ListByUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, bs)
}

// ListByFacility returns a facility's bookings.
func (h *BookingHandler) ListByFacility(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	bs, err := h.Bookings.ListByFacility(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, bs)
}

// List returns all bookings, optionally filtered by ?status=.  Admin only.
func (h *BookingHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if status := c.QueryParam("status"); status != "" {
		bs, err := h.Bookings.ListByStatus(ctx, status)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, bs)
	}
	bs, err := h.Bookings.ListAll(ctx)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, bs)
}

// Approve approves a pending booking.  Admin only.
func (h *BookingHandler) Approve(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	b, err := h.Bookings.Approve(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// Reject rejects a pending booking with a reason.  Admin only.
func (h *BookingHandler) Reject(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req reasonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	b, err := h.Bookings.Reject(c.Request().Context(), id, middleware.UserID(c), req.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// Cancel cancels the caller's own booking; admins may cancel any.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	existing, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	if existing.UserID != middleware.UserID(c) && !middleware.HasRole(c, model.RoleAdmin) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var req reasonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	b, err := h.Bookings.Cancel(ctx, id, req.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}
