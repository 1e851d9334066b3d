package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/kjh/spacebook/internal/model"
)

// UserRepo provides data access to the `users` table. Lookups that
// resolve an acting account exclude soft-deleted rows; GetByEmail
// keeps deleted rows visible so the login flow can distinguish a
// withdrawn account from a wrong email.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, role, username, email, password_hash, phone_number, deleted_at, created_at"

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u       model.User
		deleted sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Role, &u.Username, &u.Email, &u.PasswordHash,
		&u.PhoneNumber, &deleted, &u.CreatedAt)
	if err != nil {
		return model.User{}, err
	}
	if deleted.Valid {
		t := deleted.Time
		u.DeletedAt = &t
	}
	return u, nil
}

// Create inserts a user with the USER role and returns its ID. Email
// uniqueness is enforced by the unique index; a duplicate key error
// is mapped to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash, phone string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (role, username, email, password_hash, phone_number) VALUES (?,?,?,?,?)",
		model.RoleUser, username, email, passwordHash, phone)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email, including
// soft-deleted rows. Returns ErrUserNotFound when no row matches.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id, including soft-deleted rows, so the
// token reissue flow can report a withdrawn account rather than a
// missing one.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetActiveByID fetches a user by id, excluding soft-deleted rows.
func (r *UserRepo) GetActiveByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? AND deleted_at IS NULL LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// UpdatePhone replaces the user's phone number.
func (r *UserRepo) UpdatePhone(ctx context.Context, id uint64, phone string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET phone_number=? WHERE id=? AND deleted_at IS NULL", phone, id)
	return err
}

// UpdatePassword replaces the stored credential hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=? WHERE id=? AND deleted_at IS NULL", passwordHash, id)
	return err
}

// SoftDelete marks the account withdrawn. The row stays so that
// historical reservations keep a valid user reference.
func (r *UserRepo) SoftDelete(ctx context.Context, id uint64, at time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET deleted_at=? WHERE id=? AND deleted_at IS NULL",
		at.UTC(), id)
	return err
}
