package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kjh/spacebook/internal/repository"
	"github.com/kjh/spacebook/internal/service"
)

// apiResponse is the envelope every endpoint answers with. Data is
// omitted on failures, message on most successes.
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondOK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, apiResponse{Success: true, Data: data})
}

func respondMessage(c echo.Context, status int, msg string) error {
	return c.JSON(status, apiResponse{Success: true, Message: msg})
}

func respondFail(c echo.Context, status int, msg string) error {
	return c.JSON(status, apiResponse{Success: false, Message: msg})
}

// respondError translates a service error into its HTTP status. The
// mapping is exhaustive over the sentinel values; anything unknown is
// a 500 with a generic message so internals never leak to clients.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrSpaceNotFound),
		errors.Is(err, repository.ErrReservationNotFound):
		return respondFail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrTimeConflict),
		errors.Is(err, repository.ErrEmailExists),
		errors.Is(err, repository.ErrHasActiveReservation):
		return respondFail(c, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrNotOwner):
		return respondFail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, repository.ErrInvalidCredentials),
		errors.Is(err, repository.ErrInvalidRefreshToken),
		errors.Is(err, repository.ErrExpiredRefreshToken):
		return respondFail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, repository.ErrAccountDeleted):
		return respondFail(c, http.StatusGone, err.Error())
	case errors.Is(err, repository.ErrInvalidTimeRange),
		errors.Is(err, repository.ErrCapacityExceeded),
		errors.Is(err, repository.ErrInvalidPeopleCount),
		errors.Is(err, repository.ErrAlreadyCancelled),
		errors.Is(err, repository.ErrCancelTooLate),
		errors.Is(err, repository.ErrSpaceUnavailable),
		errors.Is(err, repository.ErrInvalidPassword),
		errors.Is(err, repository.ErrPasswordChangeIncomplete),
		errors.Is(err, repository.ErrSamePassword),
		errors.Is(err, repository.ErrInvalidPriceRange),
		errors.Is(err, repository.ErrInvalidSpaceInput):
		return respondFail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAIFailed),
		errors.Is(err, service.ErrAIParseFailed):
		return respondFail(c, http.StatusBadGateway, "recommendation service unavailable")
	default:
		c.Logger().Errorf("internal error: %v", err)
		return respondFail(c, http.StatusInternalServerError, "internal server error")
	}
}

// currentUserID reads the authenticated user's id stored by the JWT
// middleware. Routes calling this are always behind JWTAuth; a
// missing value means a wiring bug, answered as 401 rather than a
// panic.
func currentUserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get("user_id").(uint64)
	return id, ok
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// pageParams reads ?page= and ?size= with defaults 1 and 10.
func pageParams(c echo.Context) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	size, _ = strconv.Atoi(c.QueryParam("size"))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	return page, size
}
