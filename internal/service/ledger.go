package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/kjh/spacebook/internal/model"
	"github.com/kjh/spacebook/internal/repository"
)

// Ledger owns the booking rules for a single space's calendar: when a
// reservation may be created, when it may be cancelled, and which
// hours of a day are already taken.
//
// Create runs its overlap check and insert inside one transaction
// that first locks the space row (SELECT ... FOR UPDATE), so two
// concurrent requests for the same space are serialized and can never
// both pass the check. Requests for different spaces take different
// row locks and do not contend.
type Ledger struct {
	db           *sql.DB
	spaces       *repository.SpaceRepo
	reservations *repository.ReservationRepo

	// now is swappable in tests; production uses time.Now.
	now func() time.Time
}

func NewLedger(db *sql.DB, spaces *repository.SpaceRepo, reservations *repository.ReservationRepo) *Ledger {
	return &Ledger{db: db, spaces: spaces, reservations: reservations, now: time.Now}
}

// Create validates and books a reservation. Checks run in a fixed
// order and the first failure wins:
//
//  1. both timestamps on an exact hour boundary
//  2. end strictly after start
//  3. start no earlier than the next hour boundary (measured from
//     the top of the current hour, so 10:59 may still book 11:00
//     but never the hour already in progress)
//  4. people count positive
//  5. space exists, is OPEN and not deleted (checked under lock)
//  6. people count within capacity
//  7. no CONFIRMED reservation overlaps [start, end)
//
// The total price is frozen at booking time: whole hours times the
// space's price per hour as it stands now. Later price changes never
// touch existing reservations.
func (l *Ledger) Create(ctx context.Context, userID, spaceID uint64, start, end time.Time, people int, purpose string) (model.Reservation, error) {
	start, end = start.UTC(), end.UTC()

	if !model.OnHourBoundary(start) || !model.OnHourBoundary(end) {
		return model.Reservation{}, repository.ErrInvalidTimeRange
	}
	if !end.After(start) {
		return model.Reservation{}, repository.ErrInvalidTimeRange
	}
	earliest := l.now().UTC().Truncate(time.Hour).Add(time.Hour)
	if start.Before(earliest) {
		return model.Reservation{}, repository.ErrInvalidTimeRange
	}
	if people < 1 {
		return model.Reservation{}, repository.ErrInvalidPeopleCount
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Reservation{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	space, err := l.spaces.GetForUpdateTx(ctx, tx, spaceID)
	if err != nil {
		return model.Reservation{}, err
	}
	if space.DeletedAt != nil {
		return model.Reservation{}, repository.ErrSpaceNotFound
	}
	if !space.Bookable() {
		return model.Reservation{}, repository.ErrSpaceUnavailable
	}
	if people > space.Capacity {
		return model.Reservation{}, repository.ErrCapacityExceeded
	}

	taken, err := l.reservations.ExistsOverlappingTx(ctx, tx, spaceID, start, end)
	if err != nil {
		return model.Reservation{}, err
	}
	if taken {
		return model.Reservation{}, repository.ErrTimeConflict
	}

	res := model.Reservation{
		UserID:      userID,
		SpaceID:     spaceID,
		StartTime:   start,
		EndTime:     end,
		PeopleCount: people,
		Purpose:     purpose,
		Status:      model.ReservationConfirmed,
	}
	res.TotalPrice = res.Hours() * space.PricePerHour

	if err := l.reservations.CreateTx(ctx, tx, &res); err != nil {
		return model.Reservation{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Reservation{}, err
	}
	committed = true
	return res, nil
}

// Cancel marks a CONFIRMED reservation cancelled. A reservation that
// was already cancelled fails with ErrAlreadyCancelled; one whose
// start is less than 24 hours away fails with ErrCancelTooLate.
// Ownership is the caller's concern, not the ledger's.
func (l *Ledger) Cancel(ctx context.Context, res model.Reservation) error {
	if res.Status == model.ReservationCancelled {
		return repository.ErrAlreadyCancelled
	}
	if l.now().UTC().After(res.CancelDeadline()) {
		return repository.ErrCancelTooLate
	}
	return l.reservations.MarkCancelled(ctx, res.ID)
}

// CheckAvailability reports whether [start, end) is free of CONFIRMED
// reservations for the space. It is a read-only probe; the answer can
// go stale and Create re-checks under lock.
func (l *Ledger) CheckAvailability(ctx context.Context, spaceID uint64, start, end time.Time) (bool, error) {
	taken, err := l.reservations.ExistsOverlapping(ctx, spaceID, start, end)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// OccupiedHours returns the hour ranges of the given calendar day
// (UTC) taken by CONFIRMED reservations of the space, ordered by
// start. Reservations that spill over midnight are clamped to the
// day, so a 23:00-01:00 booking shows as {23, 24} on its first day
// and {0, 1} on the next.
func (l *Ledger) OccupiedHours(ctx context.Context, spaceID uint64, day time.Time) ([]model.ReservedTime, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	rows, err := l.reservations.FindReservedTimes(ctx, spaceID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	out := make([]model.ReservedTime, 0, len(rows))
	for _, r := range rows {
		rt := model.ReservedTime{StartHour: 0, EndHour: 24}
		if !r.StartTime.Before(dayStart) {
			rt.StartHour = r.StartTime.UTC().Hour()
		}
		if !r.EndTime.After(dayEnd) {
			rt.EndHour = int(r.EndTime.Sub(dayStart) / time.Hour)
		}
		out = append(out, rt)
	}
	return out, nil
}

// HasConfirmedReservation reports whether the user holds any
// CONFIRMED reservation, past or future. Account deletion is blocked
// while this is true.
func (l *Ledger) HasConfirmedReservation(ctx context.Context, userID uint64) (bool, error) {
	return l.reservations.ExistsConfirmedByUser(ctx, userID)
}
