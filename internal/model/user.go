package model

import (
	"strings"
	"time"
)

// User roles.  A user holds one or more roles; ADMIN unlocks catalog
// management, booking review and ticket assignment, TECHNICIAN receives
// ticket assignments.
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleTechnician = "TECHNICIAN"
	RoleManager    = "MANAGER"
)

// Auth providers.
const (
	ProviderLocal  = "LOCAL"
	ProviderGoogle = "GOOGLE"
)

// User represents an application user record as stored in the `users`
// table.  PasswordHash is empty for externally-authenticated (Google)
// accounts.  Roles is persisted as a comma-separated column.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Provider     string    `json:"provider"`
	ProviderID   string    `json:"-"`
	Roles        []string  `json:"roles"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// FirstRole returns the user's first role, or USER when the set is empty.
// Used for the author-role snapshot on comments.
func (u *User) FirstRole() string {
	if len(u.Roles) == 0 {
		return RoleUser
	}
	return u.Roles[0]
}

// ParseRole normalises a role string.
func ParseRole(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleTechnician:
		return RoleTechnician, true
	case RoleManager:
		return RoleManager, true
	}
	return "", false
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the issued token is stored.
type RefreshToken struct {
	ID        uint64     `json:"id"`
	UserID    uint64     `json:"user_id"`
	TokenHash string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
