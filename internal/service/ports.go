package service

import (
	"context"
	"time"

	"github.com/kjh/spacebook/internal/model"
	"github.com/kjh/spacebook/internal/queue"
)

// The workflow services depend on these narrow interfaces rather
// than the concrete repositories, so tests can drive them with
// in-memory fakes and no database.

// ReservationLedger is the booking rule engine; *Ledger is the
// production implementation.
type ReservationLedger interface {
	Create(ctx context.Context, userID, spaceID uint64, start, end time.Time, people int, purpose string) (model.Reservation, error)
	Cancel(ctx context.Context, res model.Reservation) error
	CheckAvailability(ctx context.Context, spaceID uint64, start, end time.Time) (bool, error)
	OccupiedHours(ctx context.Context, spaceID uint64, day time.Time) ([]model.ReservedTime, error)
	HasConfirmedReservation(ctx context.Context, userID uint64) (bool, error)
}

// UserStore is the slice of the user repository the services use.
type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash, phone string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	GetActiveByID(ctx context.Context, id uint64) (model.User, error)
	UpdatePhone(ctx context.Context, id uint64, phone string) error
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	SoftDelete(ctx context.Context, id uint64, at time.Time) error
}

// TokenStore persists refresh tokens, one live row per user.
type TokenStore interface {
	ReplaceForUser(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	Lookup(ctx context.Context, tokenHash string) (model.RefreshToken, error)
	DeleteForUser(ctx context.Context, userID uint64) error
}

// SpaceStore is the slice of the space repository the workflow needs.
type SpaceStore interface {
	GetByID(ctx context.Context, id uint64) (model.Space, error)
	GetOpenByID(ctx context.Context, id uint64) (model.Space, error)
}

// ReservationStore covers the reads the workflow performs outside the
// ledger's transaction.
type ReservationStore interface {
	GetByID(ctx context.Context, id uint64) (model.Reservation, error)
	ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]model.Reservation, int, error)
}

// Notifier hands a notification event to the message queue.
type Notifier interface {
	Publish(ctx context.Context, ev queue.NotificationEvent) error
}

// NotifierFunc adapts a plain publish function to Notifier.
type NotifierFunc func(ctx context.Context, ev queue.NotificationEvent) error

func (f NotifierFunc) Publish(ctx context.Context, ev queue.NotificationEvent) error {
	return f(ctx, ev)
}
