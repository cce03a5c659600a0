package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/smartcampus/hub/internal/domain"
	"github.com/smartcampus/hub/internal/model"
)

// UserRepo provides CRUD operations for user accounts.  Roles live in a
// comma-separated column; joining and splitting happens here so the rest
// of the code only ever sees []string.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, email, password_hash, name, avatar_url, provider, provider_id,
	roles, enabled, created_at, updated_at`

func joinRoles(roles []string) string {
	if len(roles) == 0 {
		return model.RoleUser
	}
	return strings.Join(roles, ",")
}

func splitRoles(col string) []string {
	if col == "" {
		return []string{model.RoleUser}
	}
	parts := strings.Split(col, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var (
		u          model.User
		hash       sql.NullString
		avatar     sql.NullString
		providerID sql.NullString
		roles      string
	)
	err := row.Scan(&u.ID, &u.Email, &hash, &u.Name, &avatar, &u.Provider,
		&providerID, &roles, &u.Enabled, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash.String
	u.AvatarURL = avatar.String
	u.ProviderID = providerID.String
	u.Roles = splitRoles(roles)
	return &u, nil
}

// Create inserts a user and populates its generated ID.  A duplicate
// email surfaces as domain.ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, name, avatar_url, provider, provider_id,
		   roles, enabled, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		u.Email, u.PasswordHash, u.Name, u.AvatarURL, u.Provider, u.ProviderID,
		joinRoles(u.Roles), u.Enabled, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		// 1062 is the MySQL duplicate-key error code.
		if strings.Contains(err.Error(), "1062") {
			return fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// Update rewrites a user's profile, roles and enabled flag.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET email=?, password_hash=?, name=?, avatar_url=?, provider=?,
		   provider_id=?, roles=?, enabled=?, updated_at=?
		 WHERE id = ?`,
		strings.ToLower(strings.TrimSpace(u.Email)), u.PasswordHash, u.Name, u.AvatarURL,
		u.Provider, u.ProviderID, joinRoles(u.Roles), u.Enabled, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM users WHERE id = ?", u.ID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return fmt.Errorf("%w: user %d", domain.ErrNotFound, u.ID)
		}
	}
	return nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ? LIMIT 1", id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByEmail fetches a user by normalised email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ? LIMIT 1", email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, email)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListAll returns every user ordered by name.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// ListByRole returns users holding the given role.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE FIND_IN_SET(?, roles) > 0 ORDER BY name, id",
		role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}
