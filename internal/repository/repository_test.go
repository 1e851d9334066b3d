package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjh/spacebook/internal/model"
)

func newMockDB(t *testing.T) (sqlmock.Sqlmock, *UserRepo, *TokenRepo, *SpaceRepo, *ReservationRepo) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, NewUserRepo(db), NewTokenRepo(db), NewSpaceRepo(db), NewReservationRepo(db)
}

func TestUserCreateMapsDuplicateEmail(t *testing.T) {
	mock, users, _, _, _ := newMockDB(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'kim@example.com' for key 'users.email'"))

	_, err := users.Create(context.Background(), "kim", "kim@example.com", "hash", "010")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserCreateNormalizesEmail(t *testing.T) {
	mock, users, _, _, _ := newMockDB(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(model.RoleUser, "kim", "kim@example.com", "hash", "010").
		WillReturnResult(sqlmock.NewResult(9, 1))

	id, err := users.Create(context.Background(), "kim", "  Kim@Example.COM ", "hash", "010")
	require.NoError(t, err)
	assert.Equal(t, uint64(9), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenReplaceForUserIsTransactional(t *testing.T) {
	mock, _, tokens, _, _ := newMockDB(t)
	exp := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM refresh_tokens").
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(uint64(9), "hash", exp).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, tokens.ReplaceForUser(context.Background(), 9, "hash", exp))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenReplaceRollsBackOnInsertFailure(t *testing.T) {
	mock, _, tokens, _, _ := newMockDB(t)
	exp := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM refresh_tokens").
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	assert.Error(t, tokens.ReplaceForUser(context.Background(), 9, "hash", exp))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpaceSearchBuildsFilter(t *testing.T) {
	mock, _, _, spaces, _ := newMockDB(t)

	loc, typ, minP, maxP, capacity := "Mapo", model.SpaceTypeMeeting, 5000, 20000, 4
	f := SearchFilter{Location: &loc, SpaceType: &typ, MinPrice: &minP, MaxPrice: &maxP, Capacity: &capacity}

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM spaces WHERE deleted_at IS NULL AND space_status = \\? AND location LIKE \\? AND space_type = \\? AND price_per_hour >= \\? AND price_per_hour <= \\? AND capacity >= \\?").
		WithArgs(model.SpaceStatusOpen, "%Mapo%", typ, 5000, 20000, 4).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "space_name", "description", "image_url", "space_type", "price_per_hour",
		"location", "capacity", "space_status", "owner_id", "deleted_at", "created_at", "updated_at",
	}).AddRow(5, "Hongdae Meeting Room", "", "", typ, 10000, "Mapo", 6, model.SpaceStatusOpen, 1, nil, ts, ts)

	mock.ExpectQuery("ORDER BY created_at DESC, id DESC LIMIT \\? OFFSET \\?").
		WithArgs(model.SpaceStatusOpen, "%Mapo%", typ, 5000, 20000, 4, 10, 0).
		WillReturnRows(rows)

	got, total, err := spaces.Search(context.Background(), f, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "Hongdae Meeting Room", got[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpaceSoftDeleteMissingRow(t *testing.T) {
	mock, _, _, spaces, _ := newMockDB(t)

	mock.ExpectExec("UPDATE spaces SET deleted_at").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := spaces.SoftDelete(context.Background(), 404, time.Now().UTC())
	assert.ErrorIs(t, err, ErrSpaceNotFound)
}

func TestReservationMarkCancelledZeroRows(t *testing.T) {
	mock, _, _, _, reservations := newMockDB(t)

	mock.ExpectExec("UPDATE reservations SET status").
		WithArgs(model.ReservationCancelled, uint64(3), model.ReservationConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := reservations.MarkCancelled(context.Background(), 3)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestTokenLookup(t *testing.T) {
	t.Run("unknown hash", func(t *testing.T) {
		mock, _, tokens, _, _ := newMockDB(t)
		mock.ExpectQuery("FROM refresh_tokens WHERE token_hash=\\?").
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "created_at"}))

		_, err := tokens.Lookup(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("expired row", func(t *testing.T) {
		mock, _, tokens, _, _ := newMockDB(t)
		past := time.Now().UTC().Add(-time.Hour)
		mock.ExpectQuery("FROM refresh_tokens WHERE token_hash=\\?").
			WithArgs("old").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "created_at"}).
				AddRow(1, 9, "old", past, past.Add(-time.Hour)))

		_, err := tokens.Lookup(context.Background(), "old")
		assert.ErrorIs(t, err, ErrExpiredRefreshToken)
	})

	t.Run("live row", func(t *testing.T) {
		mock, _, tokens, _, _ := newMockDB(t)
		future := time.Now().UTC().Add(time.Hour)
		mock.ExpectQuery("FROM refresh_tokens WHERE token_hash=\\?").
			WithArgs("live").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "created_at"}).
				AddRow(1, 9, "live", future, time.Now().UTC()))

		rt, err := tokens.Lookup(context.Background(), "live")
		require.NoError(t, err)
		assert.Equal(t, uint64(9), rt.UserID)
	})
}
