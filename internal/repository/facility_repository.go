package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/smartcampus/hub/internal/domain"
	"github.com/smartcampus/hub/internal/model"
)

// FacilityRepo provides CRUD and search operations for the facility
// catalog.  Amenities, image URLs and availability windows are stored in
// JSON columns and (de)serialised here.
type FacilityRepo struct {
	db *sql.DB
}

// NewFacilityRepo returns a FacilityRepo bound to the given database.
func NewFacilityRepo(db *sql.DB) *FacilityRepo { return &FacilityRepo{db: db} }

const facilityColumns = `id, name, type, capacity, location, building, floor, description,
	amenities, image_urls, status, availability_windows, created_by, created_at, updated_at`

func scanFacility(row interface{ Scan(...any) error }) (*model.Facility, error) {
	var (
		f         model.Facility
		amenities sql.NullString
		images    sql.NullString
		windows   sql.NullString
	)
	err := row.Scan(
		&f.ID, &f.Name, &f.Type, &f.Capacity, &f.Location, &f.Building, &f.Floor,
		&f.Description, &amenities, &images, &f.Status, &windows, &f.CreatedBy,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSON(amenities, &f.Amenities); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(images, &f.ImageURLs); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(windows, &f.AvailabilityWindows); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a facility and populates its generated ID.
func (r *FacilityRepo) Create(ctx context.Context, f *model.Facility) error {
	amenities, err := marshalJSON(f.Amenities)
	if err != nil {
		return err
	}
	images, err := marshalJSON(f.ImageURLs)
	if err != nil {
		return err
	}
	windows, err := marshalJSON(f.AvailabilityWindows)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO facilities (name, type, capacity, location, building, floor, description,
		   amenities, image_urls, status, availability_windows, created_by, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		f.Name, f.Type, f.Capacity, f.Location, f.Building, f.Floor, f.Description,
		amenities, images, f.Status, windows, f.CreatedBy, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// Update rewrites every mutable column of a facility.
func (r *FacilityRepo) Update(ctx context.Context, f *model.Facility) error {
	amenities, err := marshalJSON(f.Amenities)
	if err != nil {
		return err
	}
	images, err := marshalJSON(f.ImageURLs)
	if err != nil {
		return err
	}
	windows, err := marshalJSON(f.AvailabilityWindows)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE facilities SET name=?, type=?, capacity=?, location=?, building=?, floor=?,
		   description=?, amenities=?, image_urls=?, status=?, availability_windows=?, updated_at=?
		 WHERE id = ?`,
		f.Name, f.Type, f.Capacity, f.Location, f.Building, f.Floor,
		f.Description, amenities, images, f.Status, windows, f.UpdatedAt, f.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: facility %d", domain.ErrNotFound, f.ID)
	}
	return nil
}

// Delete removes a facility by id.  MySQL error 1451 means bookings
// still reference the facility; that surfaces as a conflict.
func (r *FacilityRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM facilities WHERE id = ?", id)
	if err != nil {
		if strings.Contains(err.Error(), "1451") {
			return fmt.Errorf("%w: facility %d has bookings", domain.ErrConflict, id)
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: facility %d", domain.ErrNotFound, id)
	}
	return nil
}

// GetByID fetches a facility by id.
func (r *FacilityRepo) GetByID(ctx context.Context, id uint64) (*model.Facility, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+facilityColumns+" FROM facilities WHERE id = ? LIMIT 1", id)
	f, err := scanFacility(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: facility %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ListAll returns the whole catalog ordered by name.
func (r *FacilityRepo) ListAll(ctx context.Context) ([]model.Facility, error) {
	return r.query(ctx, "SELECT "+facilityColumns+" FROM facilities ORDER BY name")
}

// Search filters the catalog by type, status and a free-text query over
// name, location and building.  Empty filters match everything.
func (r *FacilityRepo) Search(ctx context.Context, ftype, status, query string) ([]model.Facility, error) {
	where := []string{}
	args := []any{}
	if ftype != "" {
		where = append(where, "type = ?")
		args = append(args, ftype)
	}
	if status != "" {
		where = append(where, "status = ?")
		args = append(args, status)
	}
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(location) LIKE ? OR LOWER(building) LIKE ?)")
		args = append(args, like, like, like)
	}
	q := "SELECT " + facilityColumns + " FROM facilities"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY name"
	return r.query(ctx, q, args...)
}

func (r *FacilityRepo) query(ctx context.Context, q string, args ...any) ([]model.Facility, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Facility{}
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}
