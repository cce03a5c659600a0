package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcampus/hub/internal/middleware"
	"github.com/smartcampus/hub/internal/service"
)

// CommentHandler exposes the per-ticket discussion endpoints.
type CommentHandler struct {
	Comments *service.CommentService
}

func NewCommentHandler(s *service.CommentService) *CommentHandler {
	return &CommentHandler{Comments: s}
}

type commentReq struct {
	Content string `json:"content" validate:"required"`
}

// Add appends a comment to a ticket's thread.
func (h *CommentHandler) Add(c echo.Context) error {
	ticketID := pathID(c, "ticketId")
	if ticketID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	cm, err := h.Comments.Add(c.Request().Context(), ticketID, req.Content, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, cm)
}

// ListByTicket returns a ticket's comments, newest first.
func (h *CommentHandler) ListByTicket(c echo.Context) error {
	ticketID := pathID(c, "ticketId")
	if ticketID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	cs, err := h.Comments.ListByTicket(c.Request().Context(), ticketID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cs)
}

// Update edits the caller's own comment.
func (h *CommentHandler) Update(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	cm, err := h.Comments.Update(c.Request().Context(), id, req.Content, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cm)
}

// Delete removes a comment.  Authors delete their own; admins any.
func (h *CommentHandler) Delete(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Comments.Delete(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
