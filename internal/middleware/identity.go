package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// UserID returns the authenticated user's id from the context, or 0 when
// the request is unauthenticated.
func UserID(c echo.Context) uint64 {
	id, _ := c.Get(CtxUserID).(uint64)
	return id
}

// Roles returns the authenticated user's roles, nil when absent.
func Roles(c echo.Context) []string {
	held, _ := c.Get(CtxRoles).([]string)
	return held
}

// HasRole reports whether the request carries the given role.
func HasRole(c echo.Context, role string) bool {
	for _, r := range Roles(c) {
		if r == role {
			return true
		}
	}
	return false
}

// rateIdentity keys the rate limiter: the user id when authenticated,
// "anon" otherwise.
func rateIdentity(c echo.Context) string {
	if id := UserID(c); id > 0 {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
