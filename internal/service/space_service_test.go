package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjh/spacebook/internal/model"
	"github.com/kjh/spacebook/internal/repository"
)

func newTestSpaceService(t *testing.T) (*SpaceService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSpaceService(repository.NewSpaceRepo(db)), mock
}

const openDetailQuery = "FROM spaces WHERE id=\\? AND deleted_at IS NULL AND space_status=\\? LIMIT 1"

func TestSpaceDetailReturnsOpenSpace(t *testing.T) {
	svc, mock := newTestSpaceService(t)

	mock.ExpectQuery(openDetailQuery).
		WithArgs(uint64(4), model.SpaceStatusOpen).
		WillReturnRows(openSpaceRow(4, 12000, 6))

	space, err := svc.Detail(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), space.ID)
	assert.Equal(t, model.SpaceStatusOpen, space.SpaceStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpaceDetailHidesClosedSpace(t *testing.T) {
	// A CLOSED listing exists in the table but the public lookup
	// filters on status, so the row set comes back empty and the
	// caller sees not-found rather than the closed space.
	svc, mock := newTestSpaceService(t)

	mock.ExpectQuery(openDetailQuery).
		WithArgs(uint64(4), model.SpaceStatusOpen).
		WillReturnRows(sqlmock.NewRows(spaceCols))

	_, err := svc.Detail(context.Background(), 4)
	assert.ErrorIs(t, err, repository.ErrSpaceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpaceDetailHidesDeletedSpace(t *testing.T) {
	svc, mock := newTestSpaceService(t)

	mock.ExpectQuery(openDetailQuery).
		WithArgs(uint64(9), model.SpaceStatusOpen).
		WillReturnRows(sqlmock.NewRows(spaceCols))

	_, err := svc.Detail(context.Background(), 9)
	assert.ErrorIs(t, err, repository.ErrSpaceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
