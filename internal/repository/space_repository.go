package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/kjh/spacebook/internal/model"
)

// SpaceRepo provides data access to the `spaces` table. The
// soft-delete filter lives here, in the queries, so callers never
// need ambient deleted_at checks: every lookup is explicit about
// whether it sees deleted or closed rows.
type SpaceRepo struct{ DB *sql.DB }

func NewSpaceRepo(db *sql.DB) *SpaceRepo { return &SpaceRepo{DB: db} }

const spaceColumns = `id, space_name, description, image_url, space_type, price_per_hour,
	location, capacity, space_status, owner_id, deleted_at, created_at, updated_at`

type spaceScanner interface{ Scan(dest ...any) error }

func scanSpace(row spaceScanner) (model.Space, error) {
	var (
		s       model.Space
		deleted sql.NullTime
	)
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.ImageURL, &s.SpaceType,
		&s.PricePerHour, &s.Location, &s.Capacity, &s.SpaceStatus, &s.OwnerID,
		&deleted, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return model.Space{}, err
	}
	if deleted.Valid {
		t := deleted.Time
		s.DeletedAt = &t
	}
	return s, nil
}

// Create inserts a new OPEN space and returns its ID.
func (r *SpaceRepo) Create(ctx context.Context, s model.Space) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO spaces (space_name, description, image_url, space_type, price_per_hour,
		 location, capacity, space_status, owner_id) VALUES (?,?,?,?,?,?,?,?,?)`,
		s.Name, s.Description, s.ImageURL, s.SpaceType, s.PricePerHour,
		s.Location, s.Capacity, model.SpaceStatusOpen, s.OwnerID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a space regardless of status, excluding
// soft-deleted rows. Used by admin mutation paths.
func (r *SpaceRepo) GetByID(ctx context.Context, id uint64) (model.Space, error) {
	s, err := scanSpace(r.DB.QueryRowContext(ctx,
		"SELECT "+spaceColumns+" FROM spaces WHERE id=? AND deleted_at IS NULL LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Space{}, ErrSpaceNotFound
	}
	return s, err
}

// GetOpenByID fetches a space that is OPEN and not soft-deleted.
// This is the lookup the public detail and reservation paths use.
func (r *SpaceRepo) GetOpenByID(ctx context.Context, id uint64) (model.Space, error) {
	s, err := scanSpace(r.DB.QueryRowContext(ctx,
		"SELECT "+spaceColumns+" FROM spaces WHERE id=? AND deleted_at IS NULL AND space_status=? LIMIT 1",
		id, model.SpaceStatusOpen))
	if err == sql.ErrNoRows {
		return model.Space{}, ErrSpaceNotFound
	}
	return s, err
}

// GetForUpdateTx re-reads a space inside an open transaction with a
// row lock (SELECT ... FOR UPDATE). Reservation creation uses this
// lock to serialize the overlap-check-then-insert sequence per
// space: two concurrent bookings for the same space queue up on the
// spaces row. Status and soft-delete are not filtered here so the
// caller can distinguish "gone" from "closed" under the lock.
func (r *SpaceRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Space, error) {
	s, err := scanSpace(tx.QueryRowContext(ctx,
		"SELECT "+spaceColumns+" FROM spaces WHERE id=? LIMIT 1 FOR UPDATE", id))
	if err == sql.ErrNoRows {
		return model.Space{}, ErrSpaceNotFound
	}
	return s, err
}

// Update overwrites the mutable attributes of a space. The caller
// must have resolved the row via GetByID first; a missing row is
// reported as ErrSpaceNotFound.
func (r *SpaceRepo) Update(ctx context.Context, s model.Space) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE spaces SET space_name=?, description=?, image_url=?, space_type=?,
		 price_per_hour=?, location=?, capacity=?, space_status=? WHERE id=? AND deleted_at IS NULL`,
		s.Name, s.Description, s.ImageURL, s.SpaceType,
		s.PricePerHour, s.Location, s.Capacity, s.SpaceStatus, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrSpaceNotFound
	}
	return err
}

// SoftDelete marks the space removed from the catalog. Historical
// reservations keep referencing the row.
func (r *SpaceRepo) SoftDelete(ctx context.Context, id uint64, at time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE spaces SET deleted_at=? WHERE id=? AND deleted_at IS NULL", at.UTC(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrSpaceNotFound
	}
	return err
}

// SearchFilter narrows the public catalog listing. Nil fields mean
// no constraint. Location matches as a substring.
type SearchFilter struct {
	Location  *string
	SpaceType *string
	MinPrice  *int
	MaxPrice  *int
	Capacity  *int
}

// Search returns OPEN, non-deleted spaces matching the filter,
// newest first, with offset pagination. It also reports the total
// match count for page metadata.
func (r *SpaceRepo) Search(ctx context.Context, f SearchFilter, limit, offset int) ([]model.Space, int, error) {
	where := []string{"deleted_at IS NULL", "space_status = ?"}
	args := []any{model.SpaceStatusOpen}
	if f.Location != nil && *f.Location != "" {
		where = append(where, "location LIKE ?")
		args = append(args, "%"+*f.Location+"%")
	}
	if f.SpaceType != nil && *f.SpaceType != "" {
		where = append(where, "space_type = ?")
		args = append(args, *f.SpaceType)
	}
	if f.MinPrice != nil {
		where = append(where, "price_per_hour >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where = append(where, "price_per_hour <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.Capacity != nil {
		where = append(where, "capacity >= ?")
		args = append(args, *f.Capacity)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM spaces WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + spaceColumns + " FROM spaces WHERE " + cond +
		" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	rows, err := r.DB.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	spaces := make([]model.Space, 0)
	for rows.Next() {
		s, err := scanSpace(rows)
		if err != nil {
			return nil, 0, err
		}
		spaces = append(spaces, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return spaces, total, nil
}

// ListByOwner returns the owner's non-deleted spaces regardless of
// open/closed status, newest first.
func (r *SpaceRepo) ListByOwner(ctx context.Context, ownerID uint64, limit, offset int) ([]model.Space, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM spaces WHERE owner_id=? AND deleted_at IS NULL",
		ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+spaceColumns+" FROM spaces WHERE owner_id=? AND deleted_at IS NULL"+
			" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	spaces := make([]model.Space, 0)
	for rows.Next() {
		s, err := scanSpace(rows)
		if err != nil {
			return nil, 0, err
		}
		spaces = append(spaces, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return spaces, total, nil
}
