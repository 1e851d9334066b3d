package service

import (
	"context"
	"sync"
	"time"

	"github.com/kjh/spacebook/internal/model"
	"github.com/kjh/spacebook/internal/queue"
	"github.com/kjh/spacebook/internal/repository"
)

// In-memory fakes for the service ports. They hold plain maps and
// return the same sentinel errors the real repositories do.

type fakeUsers struct {
	byID map[uint64]model.User
}

func newFakeUsers(users ...model.User) *fakeUsers {
	f := &fakeUsers{byID: make(map[uint64]model.User)}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(ctx context.Context, username, email, passwordHash, phone string) (uint64, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	id := uint64(len(f.byID) + 1)
	f.byID[id] = model.User{ID: id, Role: model.RoleUser, Username: username,
		Email: email, PasswordHash: passwordHash, PhoneNumber: phone}
	return id, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (f *fakeUsers) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetActiveByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := f.GetByID(ctx, id)
	if err != nil || u.IsDeleted() {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) UpdatePhone(ctx context.Context, id uint64, phone string) error {
	u := f.byID[id]
	u.PhoneNumber = phone
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	u := f.byID[id]
	u.PasswordHash = passwordHash
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) SoftDelete(ctx context.Context, id uint64, at time.Time) error {
	u := f.byID[id]
	u.DeletedAt = &at
	f.byID[id] = u
	return nil
}

type fakeTokens struct {
	byUser map[uint64]model.RefreshToken
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{byUser: make(map[uint64]model.RefreshToken)}
}

func (f *fakeTokens) ReplaceForUser(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	f.byUser[userID] = model.RefreshToken{UserID: userID, TokenHash: tokenHash, ExpiresAt: exp}
	return nil
}

func (f *fakeTokens) Lookup(ctx context.Context, tokenHash string) (model.RefreshToken, error) {
	for _, rt := range f.byUser {
		if rt.TokenHash == tokenHash {
			if time.Now().UTC().After(rt.ExpiresAt) {
				return model.RefreshToken{}, repository.ErrExpiredRefreshToken
			}
			return rt, nil
		}
	}
	return model.RefreshToken{}, repository.ErrInvalidRefreshToken
}

func (f *fakeTokens) DeleteForUser(ctx context.Context, userID uint64) error {
	delete(f.byUser, userID)
	return nil
}

type fakeSpaces struct {
	byID map[uint64]model.Space
}

func newFakeSpaces(spaces ...model.Space) *fakeSpaces {
	f := &fakeSpaces{byID: make(map[uint64]model.Space)}
	for _, s := range spaces {
		f.byID[s.ID] = s
	}
	return f
}

func (f *fakeSpaces) GetByID(ctx context.Context, id uint64) (model.Space, error) {
	s, ok := f.byID[id]
	if !ok || s.DeletedAt != nil {
		return model.Space{}, repository.ErrSpaceNotFound
	}
	return s, nil
}

func (f *fakeSpaces) GetOpenByID(ctx context.Context, id uint64) (model.Space, error) {
	s, err := f.GetByID(ctx, id)
	if err != nil || s.SpaceStatus != model.SpaceStatusOpen {
		return model.Space{}, repository.ErrSpaceNotFound
	}
	return s, nil
}

type fakeReservations struct {
	byID map[uint64]model.Reservation
}

func newFakeReservations(rs ...model.Reservation) *fakeReservations {
	f := &fakeReservations{byID: make(map[uint64]model.Reservation)}
	for _, r := range rs {
		f.byID[r.ID] = r
	}
	return f
}

func (f *fakeReservations) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return model.Reservation{}, repository.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservations) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]model.Reservation, int, error) {
	var all []model.Reservation
	for _, r := range f.byID {
		if r.UserID == userID {
			all = append(all, r)
		}
	}
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

// fakeLedger records calls and answers from canned state.
type fakeLedger struct {
	created    []model.Reservation
	createErr  error
	cancelErr  error
	hasBooking bool
}

func (f *fakeLedger) Create(ctx context.Context, userID, spaceID uint64, start, end time.Time, people int, purpose string) (model.Reservation, error) {
	if f.createErr != nil {
		return model.Reservation{}, f.createErr
	}
	res := model.Reservation{
		ID: uint64(len(f.created) + 1), UserID: userID, SpaceID: spaceID,
		StartTime: start, EndTime: end, PeopleCount: people, Purpose: purpose,
		Status: model.ReservationConfirmed,
	}
	f.created = append(f.created, res)
	return res, nil
}

func (f *fakeLedger) Cancel(ctx context.Context, res model.Reservation) error {
	return f.cancelErr
}

func (f *fakeLedger) CheckAvailability(ctx context.Context, spaceID uint64, start, end time.Time) (bool, error) {
	return true, nil
}

func (f *fakeLedger) OccupiedHours(ctx context.Context, spaceID uint64, day time.Time) ([]model.ReservedTime, error) {
	return nil, nil
}

func (f *fakeLedger) HasConfirmedReservation(ctx context.Context, userID uint64) (bool, error) {
	return f.hasBooking, nil
}

// recordingNotifier collects published events; Wait blocks until n
// events arrived, since publishing happens on background goroutines.
type recordingNotifier struct {
	mu     sync.Mutex
	events []queue.NotificationEvent
	arrive chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{arrive: make(chan struct{}, 16)}
}

func (n *recordingNotifier) Publish(ctx context.Context, ev queue.NotificationEvent) error {
	n.mu.Lock()
	n.events = append(n.events, ev)
	n.mu.Unlock()
	n.arrive <- struct{}{}
	return nil
}

func (n *recordingNotifier) Wait(count int, timeout time.Duration) []queue.NotificationEvent {
	deadline := time.After(timeout)
	for received := 0; received < count; {
		select {
		case <-n.arrive:
			received++
		case <-deadline:
			count = 0
		}
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]queue.NotificationEvent(nil), n.events...)
}
