package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjh/spacebook/internal/repository"
	"github.com/kjh/spacebook/internal/service"
)

func callRespondError(t *testing.T, err error) (int, apiResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, respondError(c, err))
	var body apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{repository.ErrUserNotFound, http.StatusNotFound},
		{repository.ErrSpaceNotFound, http.StatusNotFound},
		{repository.ErrReservationNotFound, http.StatusNotFound},
		{repository.ErrTimeConflict, http.StatusConflict},
		{repository.ErrEmailExists, http.StatusConflict},
		{repository.ErrHasActiveReservation, http.StatusConflict},
		{repository.ErrNotOwner, http.StatusForbidden},
		{repository.ErrInvalidCredentials, http.StatusUnauthorized},
		{repository.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{repository.ErrExpiredRefreshToken, http.StatusUnauthorized},
		{repository.ErrAccountDeleted, http.StatusGone},
		{repository.ErrInvalidTimeRange, http.StatusBadRequest},
		{repository.ErrCapacityExceeded, http.StatusBadRequest},
		{repository.ErrInvalidPeopleCount, http.StatusBadRequest},
		{repository.ErrAlreadyCancelled, http.StatusBadRequest},
		{repository.ErrCancelTooLate, http.StatusBadRequest},
		{repository.ErrSpaceUnavailable, http.StatusBadRequest},
		{repository.ErrInvalidPassword, http.StatusBadRequest},
		{repository.ErrPasswordChangeIncomplete, http.StatusBadRequest},
		{repository.ErrSamePassword, http.StatusBadRequest},
		{repository.ErrInvalidPriceRange, http.StatusBadRequest},
		{repository.ErrInvalidSpaceInput, http.StatusBadRequest},
		{service.ErrAIFailed, http.StatusBadGateway},
		{service.ErrAIParseFailed, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			status, body := callRespondError(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestRespondErrorHidesInternals(t *testing.T) {
	status, body := callRespondError(t, errors.New("dial tcp 10.0.0.4:3306: i/o timeout"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body.Message)
}

func TestRespondErrorUnwrapsWrappedErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("while booking"), repository.ErrTimeConflict)
	status, _ := callRespondError(t, wrapped)
	assert.Equal(t, http.StatusConflict, status)
}
