// Package router wires the HTTP routes to their handlers and applies the
// authentication and role middleware per group.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/smartcampus/hub/internal/handler"
	"github.com/smartcampus/hub/internal/middleware"
	"github.com/smartcampus/hub/internal/model"
)

// Handlers bundles every handler the router needs.
type Handlers struct {
	Auth          *handler.AuthHandler
	Facilities    *handler.FacilityHandler
	Bookings      *handler.BookingHandler
	Tickets       *handler.TicketHandler
	Comments      *handler.CommentHandler
	Notifications *handler.NotificationHandler
}

// Register mounts every route on the Echo instance.  Unauthenticated
// operations live under /v1/auth plus the health check; everything else
// requires a valid access token, with admin- and technician-only
// endpoints guarded by RequireRole.
//
// The rate limiter runs per group: on /v1/auth it keys by IP alone, on
// /v1 it runs after JWTAuth so the per-user key component is populated.
// The response cache covers only the facility catalog reads; responses
// for every other route are per-user and must never be shared.
func Register(e *echo.Echo, h Handlers, jwtSecret string, limiter, cache echo.MiddlewareFunc) {
	if limiter == nil {
		limiter = passthrough
	}
	if cache == nil {
		cache = passthrough
	}

	e.GET("/healthz", handler.Health)

	// session endpoints, no token required
	auth := e.Group("/v1/auth", limiter)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.GET("/google", h.Auth.GoogleLoginURL)
	auth.GET("/google/callback", h.Auth.GoogleCallback)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	v1 := e.Group("/v1", middleware.JWTAuth(jwtSecret), limiter)
	admin := middleware.RequireRole(model.RoleAdmin)
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleTechnician)

	v1.GET("/me", h.Auth.Me)
	v1.GET("/users", h.Auth.ListUsers, admin)
	v1.PUT("/users/:id/roles", h.Auth.UpdateRoles, admin)

	// facility catalog: reads for everyone and cacheable, writes for admins
	v1.GET("/facilities", h.Facilities.List, cache)
	v1.GET("/facilities/search", h.Facilities.Search, cache)
	v1.GET("/facilities/:id", h.Facilities.Get, cache)
	v1.POST("/facilities", h.Facilities.Create, admin)
	v1.PUT("/facilities/:id", h.Facilities.Update, admin)
	v1.DELETE("/facilities/:id", h.Facilities.Delete, admin)

	// bookings
	v1.POST("/bookings", h.Bookings.Create)
	v1.GET("/bookings", h.Bookings.List, admin)
	v1.GET("/bookings/my", h.Bookings.ListMine)
	v1.GET("/bookings/facility/:id", h.Bookings.ListByFacility)
	v1.GET("/bookings/:id", h.Bookings.Get)
	v1.PUT("/bookings/:id/approve", h.Bookings.Approve, admin)
	v1.PUT("/bookings/:id/reject", h.Bookings.Reject, admin)
	v1.PUT("/bookings/:id/cancel", h.Bookings.Cancel)

	// maintenance tickets
	v1.POST("/tickets", h.Tickets.Create)
	v1.GET("/tickets", h.Tickets.List, admin)
	v1.GET("/tickets/my", h.Tickets.ListMine)
	v1.GET("/tickets/assigned", h.Tickets.ListAssigned, staff)
	v1.GET("/tickets/:id", h.Tickets.Get)
	v1.PUT("/tickets/:id/assign", h.Tickets.Assign, admin)
	v1.PUT("/tickets/:id/status", h.Tickets.UpdateStatus, staff)
	v1.DELETE("/tickets/:id", h.Tickets.Delete, admin)

	// ticket discussion threads
	v1.POST("/comments/ticket/:ticketId", h.Comments.Add)
	v1.GET("/comments/ticket/:ticketId", h.Comments.ListByTicket)
	v1.PUT("/comments/:id", h.Comments.Update)
	v1.DELETE("/comments/:id", h.Comments.Delete)

	// notifications, always scoped to the caller
	v1.GET("/notifications", h.Notifications.List)
	v1.GET("/notifications/unread-count", h.Notifications.UnreadCount)
	v1.PUT("/notifications/:id/read", h.Notifications.MarkRead)
	v1.PUT("/notifications/read-all", h.Notifications.MarkAllRead)
	v1.DELETE("/notifications/:id", h.Notifications.Delete)
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }
