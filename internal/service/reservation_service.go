package service

import (
	"context"
	"log"
	"time"

	"github.com/kjh/spacebook/internal/model"
	"github.com/kjh/spacebook/internal/queue"
	"github.com/kjh/spacebook/internal/repository"
)

// ReservationService drives the booking workflow around the ledger:
// it resolves the acting user and the target space, enforces
// ownership on reads and cancellation, and emits notification events
// after state changes. Event publishing is fire-and-forget; a broker
// outage never fails a booking.
type ReservationService struct {
	ledger       ReservationLedger
	users        UserStore
	spaces       SpaceStore
	reservations ReservationStore
	notifier     Notifier
}

func NewReservationService(ledger ReservationLedger, users UserStore, spaces SpaceStore, reservations ReservationStore, notifier Notifier) *ReservationService {
	return &ReservationService{
		ledger:       ledger,
		users:        users,
		spaces:       spaces,
		reservations: reservations,
		notifier:     notifier,
	}
}

// Create books a space for the user and emits a confirmation event.
func (s *ReservationService) Create(ctx context.Context, userID, spaceID uint64, start, end time.Time, people int, purpose string) (model.Reservation, error) {
	user, err := s.users.GetActiveByID(ctx, userID)
	if err != nil {
		return model.Reservation{}, err
	}
	space, err := s.spaces.GetOpenByID(ctx, spaceID)
	if err != nil {
		return model.Reservation{}, err
	}

	res, err := s.ledger.Create(ctx, user.ID, space.ID, start, end, people, purpose)
	if err != nil {
		return model.Reservation{}, err
	}

	s.notify(ctx, queue.NotificationEvent{
		Kind:          queue.KindReservationConfirmed,
		ReservationID: res.ID,
		UserID:        user.ID,
		Email:         user.Email,
		SpaceName:     space.Name,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		PeopleCount:   res.PeopleCount,
		TotalPrice:    res.TotalPrice,
		OccurredAt:    time.Now().UTC(),
	})
	return res, nil
}

// Cancel cancels the user's own reservation. Existence is checked
// before ownership, so an unknown id reads as not found rather than
// leaking that the reservation belongs to someone else.
func (s *ReservationService) Cancel(ctx context.Context, userID, reservationID uint64) (model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return model.Reservation{}, err
	}
	if res.UserID != userID {
		return model.Reservation{}, repository.ErrNotOwner
	}
	if err := s.ledger.Cancel(ctx, res); err != nil {
		return model.Reservation{}, err
	}
	res.Status = model.ReservationCancelled

	ev := queue.NotificationEvent{
		Kind:          queue.KindReservationCancelled,
		ReservationID: res.ID,
		UserID:        res.UserID,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		PeopleCount:   res.PeopleCount,
		TotalPrice:    res.TotalPrice,
		OccurredAt:    time.Now().UTC(),
	}
	// Best-effort enrichment: the user always exists here, but the
	// space may have been soft-deleted since booking.
	if user, uerr := s.users.GetActiveByID(ctx, userID); uerr == nil {
		ev.Email = user.Email
	}
	if space, serr := s.spaces.GetByID(ctx, res.SpaceID); serr == nil {
		ev.SpaceName = space.Name
	}
	s.notify(ctx, ev)
	return res, nil
}

// Get returns the user's own reservation.
func (s *ReservationService) Get(ctx context.Context, userID, reservationID uint64) (model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return model.Reservation{}, err
	}
	if res.UserID != userID {
		return model.Reservation{}, repository.ErrNotOwner
	}
	return res, nil
}

// ListMine pages through the user's reservations, newest first.
func (s *ReservationService) ListMine(ctx context.Context, userID uint64, page, size int) ([]model.Reservation, int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}
	return s.reservations.ListByUser(ctx, userID, size, (page-1)*size)
}

// CheckAvailability answers the read-only availability probe for a
// space and time range.
func (s *ReservationService) CheckAvailability(ctx context.Context, spaceID uint64, start, end time.Time) (bool, error) {
	if _, err := s.spaces.GetOpenByID(ctx, spaceID); err != nil {
		return false, err
	}
	return s.ledger.CheckAvailability(ctx, spaceID, start, end)
}

// ReservedTimes lists the occupied hour ranges of a space for one
// calendar day.
func (s *ReservationService) ReservedTimes(ctx context.Context, spaceID uint64, day time.Time) ([]model.ReservedTime, error) {
	if _, err := s.spaces.GetByID(ctx, spaceID); err != nil {
		return nil, err
	}
	return s.ledger.OccupiedHours(ctx, spaceID, day)
}

// notify publishes in the background so the request does not wait on
// the broker. Failures are logged by the publisher and dropped.
func (s *ReservationService) notify(ctx context.Context, ev queue.NotificationEvent) {
	go func(ctx context.Context) {
		if err := s.notifier.Publish(ctx, ev); err != nil {
			log.Printf("notify: publish %s for reservation %d failed: %v", ev.Kind, ev.ReservationID, err)
		}
	}(context.WithoutCancel(ctx))
}
