package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"

	"github.com/smartcampus/hub/internal/config"
	"github.com/smartcampus/hub/internal/domain"
	"github.com/smartcampus/hub/internal/middleware"
	"github.com/smartcampus/hub/internal/model"
	"github.com/smartcampus/hub/internal/utils"
)

// UserStore is the slice of the user repository the auth endpoints need.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
	ListByRole(ctx context.Context, role string) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
}

// TokenStore persists refresh token hashes.
type TokenStore interface {
	Store(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error
	Validate(ctx context.Context, tokenHash string, now time.Time) (uint64, error)
	Revoke(ctx context.Context, tokenHash string, now time.Time) error
	RevokeAllForUser(ctx context.Context, userID uint64, now time.Time) error
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens TokenStore
	Google *oauth2.Config // nil when Google sign-in is not configured
}

func NewAuthHandler(cfg config.Config, u UserStore, t TokenStore, g *oauth2.Config) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Google: g}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}
type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
type rolesReq struct {
	Roles []string `json:"roles" validate:"required,min=1"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type authResp struct {
	User    *model.User `json:"user"`
	Access  tokenPart   `json:"access"`
	Refresh tokenPart   `json:"refresh"`
}

// issuePair mints an access/refresh pair and stores the refresh hash.
func (h *AuthHandler) issuePair(ctx context.Context, u *model.User) (*authResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, u.Roles, h.Cfg.AccessTTLMin)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return nil, err
	}
	if err := h.Tokens.Store(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return nil, err
	}
	return &authResp{
		User:    u,
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	}, nil
}

// Register creates a local account and returns tokens immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return fail(c, err)
	}
	now := time.Now().UTC()
	u := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Provider:     model.ProviderLocal,
		Roles:        []string{model.RoleUser},
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.Users.Create(ctx, u); err != nil {
		return fail(c, err)
	}

	resp, err := h.issuePair(ctx, u)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and returns a new token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return fail(c, err)
	}
	if !u.Enabled || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	resp, err := h.issuePair(ctx, u)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GoogleLoginURL returns the consent screen URL for the Google flow.
func (h *AuthHandler) GoogleLoginURL(c echo.Context) error {
	if h.Google == nil {
		return c.JSON(http.StatusNotImplemented, echo.Map{"error": "google sign-in not configured"})
	}
	return c.JSON(http.StatusOK, echo.Map{"url": h.Google.AuthCodeURL("state")})
}

// GoogleCallback exchanges the authorization code, auto-registering the
// account on first sign-in, and returns a token pair.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	if h.Google == nil {
		return c.JSON(http.StatusNotImplemented, echo.Map{"error": "google sign-in not configured"})
	}
	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	info, err := utils.FetchGoogleUser(ctx, h.Google, code)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "google sign-in failed"})
	}

	u, err := h.Users.GetByEmail(ctx, info.Email)
	if errors.Is(err, domain.ErrNotFound) {
		now := time.Now().UTC()
		u = &model.User{
			Email:      info.Email,
			Name:       info.Name,
			AvatarURL:  info.Picture,
			Provider:   model.ProviderGoogle,
			ProviderID: info.ID,
			Roles:      []string{model.RoleUser},
			Enabled:    true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		err = h.Users.Create(ctx, u)
	}
	if err != nil {
		return fail(c, err)
	}
	if !u.Enabled {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account disabled"})
	}

	resp, err := h.issuePair(ctx, u)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh validates a refresh token by hash, revokes it and issues a new
// pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	userID, err := h.Tokens.Validate(ctx, hash, now)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	_ = h.Tokens.Revoke(ctx, hash, now)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil || !u.Enabled {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}

	resp, err := h.issuePair(ctx, u)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout revokes the presented refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tokens.Revoke(ctx, utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken)), time.Now().UTC()); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's record.
func (h *AuthHandler) Me(c echo.Context) error {
	u, err := h.Users.GetByID(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// ListUsers returns all accounts, optionally filtered by ?role=.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	if role := c.QueryParam("role"); role != "" {
		parsed, ok := model.ParseRole(role)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
		}
		users, err := h.Users.ListByRole(ctx, parsed)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, users)
	}
	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateRoles replaces a user's role set.
func (h *AuthHandler) UpdateRoles(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req rolesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	roles := make([]string, 0, len(req.Roles))
	for _, r := range req.Roles {
		parsed, ok := model.ParseRole(r)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role: " + r})
		}
		roles = append(roles, parsed)
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	now := time.Now().UTC()
	u.Roles = roles
	u.UpdatedAt = now
	if err := h.Users.Update(ctx, u); err != nil {
		return fail(c, err)
	}
	// live refresh tokens would keep minting access tokens with the
	// old role set, so a role change invalidates all of them
	if err := h.Tokens.RevokeAllForUser(ctx, u.ID, now); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
