// Package domain defines the error kinds shared by repositories, services
// and handlers.  Callers classify failures with errors.Is against these
// sentinels; the concrete error carries the human-readable detail via
// fmt.Errorf("%w: ...") wrapping.
package domain

import "errors"

// ErrNotFound indicates that an entity id has no matching record.
// Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrInvalidArgument indicates malformed input, such as a start time at
// or after the end time, or an unrecognized enumeration value.  Maps to
// HTTP 400.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInvalidState indicates an operation that is not legal given the
// entity's current state, such as approving a non-pending booking.
// Maps to HTTP 422.
var ErrInvalidState = errors.New("invalid state")

// ErrConflict indicates a booking time-window overlap or a uniqueness
// violation.  Maps to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized indicates an authentication or authorization failure,
// such as editing another user's comment.  Maps to HTTP 401/403.
var ErrUnauthorized = errors.New("unauthorized")
