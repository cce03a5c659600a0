package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/smartcampus/hub/internal/middleware"
	"github.com/smartcampus/hub/internal/model"
	"github.com/smartcampus/hub/internal/service"
	"github.com/smartcampus/hub/internal/storage"
)

// TicketHandler exposes the maintenance ticket endpoints.  Creation
// accepts multipart form data so photo attachments can ride along with
// the report.
type TicketHandler struct {
	Tickets *service.TicketService
	Store   *storage.LocalStore
}

func NewTicketHandler(s *service.TicketService, store *storage.LocalStore) *TicketHandler {
	return &TicketHandler{Tickets: s, Store: store}
}

type assignReq struct {
	TechnicianID uint64 `json:"technician_id" validate:"required"`
}

type ticketStatusReq struct {
	Status          string `json:"status" validate:"required"`
	ResolutionNotes string `json:"resolution_notes"`
	RejectionReason string `json:"rejection_reason"`
}

// Create files a new ticket from a multipart form.  Up to three files
// under the "attachments" field are stored and linked to the ticket.
func (h *TicketHandler) Create(c echo.Context) error {
	title := c.FormValue("title")
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}

	in := service.CreateTicketInput{
		Title:        title,
		Location:     c.FormValue("location"),
		Category:     c.FormValue("category"),
		Description:  c.FormValue("description"),
		Priority:     c.FormValue("priority"),
		ReporterID:   middleware.UserID(c),
		ContactEmail: c.FormValue("contact_email"),
		ContactPhone: c.FormValue("contact_phone"),
	}
	if v := c.FormValue("facility_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid facility_id"})
		}
		in.FacilityID = &id
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["attachments"]
		if len(files) > model.MaxTicketAttachments {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "too many attachments"})
		}
		saved := []string{}
		for _, fh := range files {
			src, err := fh.Open()
			if err != nil {
				return fail(c, err)
			}
			url, err := h.Store.Save(src, fh.Filename)
			src.Close()
			if err != nil {
				return fail(c, err)
			}
			saved = append(saved, url)
		}
		in.AttachmentURLs = saved
	}

	t, err := h.Tickets.Create(c.Request().Context(), in)
	if err != nil {
		// drop files that no ticket row references
		for _, url := range in.AttachmentURLs {
			_ = h.Store.Remove(url)
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// Get returns one ticket.
func (h *TicketHandler) Get(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.Tickets.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// List returns all tickets, optionally filtered by ?status=.  Admin only.
func (h *TicketHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	if status := c.QueryParam("status"); status != "" {
		ts, err := h.Tickets.ListByStatus(ctx, status)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, ts)
	}
	ts, err := h.Tickets.ListAll(ctx)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ts)
}

// ListMine returns tickets reported by the authenticated user.
func (h *TicketHandler) ListMine(c echo.Context) error {
	ts, err := h.Tickets.ListByReporter(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ts)
}

// ListAssigned returns tickets assigned to the authenticated technician.
func (h *TicketHandler) ListAssigned(c echo.Context) error {
	ts, err := h.Tickets.ListByAssignee(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ts)
}

// Assign hands a ticket to a technician and moves it to IN_PROGRESS.
// Admin only.
func (h *TicketHandler) Assign(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req assignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	t, err := h.Tickets.Assign(c.Request().Context(), id, req.TechnicianID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// UpdateStatus sets a ticket's status directly.  Admin or technician.
func (h *TicketHandler) UpdateStatus(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req ticketStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	t, err := h.Tickets.UpdateStatus(c.Request().Context(), id, req.Status, req.ResolutionNotes, req.RejectionReason)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Delete removes a ticket and its stored attachments.  Admin only.
func (h *TicketHandler) Delete(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	t, err := h.Tickets.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	if err := h.Tickets.Delete(ctx, id); err != nil {
		return fail(c, err)
	}
	for _, url := range t.AttachmentURLs {
		_ = h.Store.Remove(url)
	}
	return c.NoContent(http.StatusNoContent)
}
