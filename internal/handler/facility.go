package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcampus/hub/internal/middleware"
	"github.com/smartcampus/hub/internal/model"
	"github.com/smartcampus/hub/internal/service"
)

// FacilityHandler exposes the facility catalog endpoints.
type FacilityHandler struct {
	Facilities *service.FacilityService
}

func NewFacilityHandler(s *service.FacilityService) *FacilityHandler {
	return &FacilityHandler{Facilities: s}
}

type facilityReq struct {
	Name                string                     `json:"name" validate:"required"`
	Type                string                     `json:"type" validate:"required"`
	Capacity            int                        `json:"capacity" validate:"gte=0"`
	Location            string                     `json:"location"`
	Building            string                     `json:"building"`
	Floor               string                     `json:"floor"`
	Description         string                     `json:"description"`
	Amenities           []string                   `json:"amenities"`
	ImageURLs           []string                   `json:"image_urls"`
	Status              string                     `json:"status"`
	AvailabilityWindows []model.AvailabilityWindow `json:"availability_windows"`
}

func (r facilityReq) input() service.FacilityInput {
	return service.FacilityInput{
		Name:                r.Name,
		Type:                r.Type,
		Capacity:            r.Capacity,
		Location:            r.Location,
		Building:            r.Building,
		Floor:               r.Floor,
		Description:         r.Description,
		Amenities:           r.Amenities,
		ImageURLs:           r.ImageURLs,
		Status:              r.Status,
		AvailabilityWindows: r.AvailabilityWindows,
	}
}

// Create registers a new facility.  Admin only.
func (h *FacilityHandler) Create(c echo.Context) error {
	var req facilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	f, err := h.Facilities.Create(c.Request().Context(), req.input(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

// Update rewrites a facility.  Admin only.
func (h *FacilityHandler) Update(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req facilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	f, err := h.Facilities.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

// Delete removes a facility.  Admin only.
func (h *FacilityHandler) Delete(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Facilities.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Get returns one facility.
func (h *FacilityHandler) Get(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	f, err := h.Facilities.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

// List returns the whole catalog.
func (h *FacilityHandler) List(c echo.Context) error {
	fs, err := h.Facilities.ListAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, fs)
}

// Search filters the catalog by ?type=, ?status= and ?q=.
func (h *FacilityHandler) Search(c echo.Context) error {
	fs, err := h.Facilities.Search(c.Request().Context(),
		c.QueryParam("type"), c.QueryParam("status"), c.QueryParam("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, fs)
}
