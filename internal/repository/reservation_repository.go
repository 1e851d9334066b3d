package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kjh/spacebook/internal/model"
)

// ReservationRepo provides data access to the `reservations` table.
// It is deliberately mechanical: the booking rules (hour alignment,
// lead time, capacity, the cancellation deadline) live in the ledger
// service, which drives these queries inside a single transaction.
// All timestamps are stored and compared in UTC.
type ReservationRepo struct{ DB *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

const reservationColumns = `id, user_id, space_id, start_time, end_time, people_count,
	total_price, purpose, status, created_at, updated_at`

type reservationScanner interface{ Scan(dest ...any) error }

func scanReservation(row reservationScanner) (model.Reservation, error) {
	var (
		res     model.Reservation
		purpose sql.NullString
	)
	err := row.Scan(&res.ID, &res.UserID, &res.SpaceID, &res.StartTime, &res.EndTime,
		&res.PeopleCount, &res.TotalPrice, &purpose, &res.Status,
		&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return model.Reservation{}, err
	}
	res.Purpose = purpose.String
	return res, nil
}

// ExistsOverlappingTx reports whether a CONFIRMED reservation for
// the space intersects the half-open range [start, end). Touching
// boundaries (end == other.start) do not count. Runs inside the
// caller's transaction so the answer stays true until commit while
// the space row is locked.
func (r *ReservationRepo) ExistsOverlappingTx(ctx context.Context, tx *sql.Tx, spaceID uint64, start, end time.Time) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations
		 WHERE space_id = ? AND status = ? AND start_time < ? AND end_time > ?`,
		spaceID, model.ReservationConfirmed, end.UTC(), start.UTC()).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ExistsOverlapping is the untransacted variant of
// ExistsOverlappingTx, used for the read-only availability probe. The
// answer may be stale by the time a booking is attempted; the booking
// path always re-checks under the space lock.
func (r *ReservationRepo) ExistsOverlapping(ctx context.Context, spaceID uint64, start, end time.Time) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations
		 WHERE space_id = ? AND status = ? AND start_time < ? AND end_time > ?`,
		spaceID, model.ReservationConfirmed, end.UTC(), start.UTC()).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateTx inserts a CONFIRMED reservation within the caller's
// transaction and populates the generated ID and timestamps on the
// provided record. The caller must commit or roll back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO reservations (user_id, space_id, start_time, end_time, people_count,
		 total_price, purpose, status) VALUES (?,?,?,?,?,?,?,?)`,
		res.UserID, res.SpaceID, res.StartTime.UTC(), res.EndTime.UTC(),
		res.PeopleCount, res.TotalPrice, res.Purpose, model.ReservationConfirmed)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	res.Status = model.ReservationConfirmed
	// Read back DB-generated timestamps so the caller returns the
	// row exactly as stored.
	return tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM reservations WHERE id = ?",
		res.ID).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// GetByID fetches a reservation by id. Reservations are never
// soft-deleted, so there is no filter here.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	res, err := scanReservation(r.DB.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id = ? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Reservation{}, ErrReservationNotFound
	}
	return res, err
}

// MarkCancelled flips a CONFIRMED reservation to CANCELLED. The
// WHERE clause re-checks the status so a concurrent cancel can never
// apply twice; zero affected rows means the reservation was already
// CANCELLED by the time the update ran.
func (r *ReservationRepo) MarkCancelled(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE reservations SET status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ? AND status = ?",
		model.ReservationCancelled, id, model.ReservationConfirmed)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyCancelled
	}
	return nil
}

// FindReservedTimes returns the CONFIRMED reservations for a space
// intersecting [dayStart, dayEnd), ordered by start time. The ledger
// reduces these to occupied hour pairs for the public availability
// endpoint.
func (r *ReservationRepo) FindReservedTimes(ctx context.Context, spaceID uint64, dayStart, dayEnd time.Time) ([]model.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations
		 WHERE space_id = ? AND status = ? AND start_time < ? AND end_time > ?
		 ORDER BY start_time`,
		spaceID, model.ReservationConfirmed, dayEnd.UTC(), dayStart.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// ListByUser returns the user's reservations newest first with
// offset pagination, plus the total count for page metadata.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]model.Reservation, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE user_id = ?", userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE user_id = ?"+
			" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ExistsConfirmedByUser reports whether the user holds any CONFIRMED
// reservation. The account lifecycle guard uses this to block
// withdrawal.
func (r *ReservationRepo) ExistsConfirmedByUser(ctx context.Context, userID uint64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE user_id = ? AND status = ?",
		userID, model.ReservationConfirmed).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
