// Package repository defines the sentinel errors shared by the data
// access layer and the services built on top of it. Higher layers
// compare against these values with errors.Is and translate them
// into stable HTTP responses, so every business failure the system
// can produce has exactly one value here.
package repository

import "errors"

// Lookup failures. Soft-deleted rows count as not found wherever the
// query is defined to exclude them.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrSpaceNotFound       = errors.New("space not found")
	ErrReservationNotFound = errors.New("reservation not found")
)

// Reservation rule violations.
var (
	// ErrTimeConflict signals an overlapping CONFIRMED reservation
	// for the requested slot.
	ErrTimeConflict = errors.New("reservation time conflict")
	// ErrInvalidTimeRange covers end-not-after-start, timestamps off
	// the hour boundary, and starts inside the one-hour lead window.
	ErrInvalidTimeRange = errors.New("invalid reservation time range")
	// ErrCapacityExceeded signals a people count above the space's capacity.
	ErrCapacityExceeded = errors.New("people count exceeds capacity")
	// ErrInvalidPeopleCount signals a people count below one.
	ErrInvalidPeopleCount = errors.New("people count must be at least 1")
	// ErrNotOwner signals an authenticated caller touching a
	// reservation that belongs to someone else. Distinct from
	// ErrReservationNotFound: the row exists.
	ErrNotOwner = errors.New("not the reservation owner")
	// ErrAlreadyCancelled signals a cancel on a reservation that is
	// already CANCELLED. Deliberately an error, never a no-op.
	ErrAlreadyCancelled = errors.New("reservation already cancelled")
	// ErrCancelTooLate signals a cancel within 24 hours of the start time.
	ErrCancelTooLate = errors.New("cancellation window closed")
	// ErrSpaceUnavailable signals a CLOSED or soft-deleted target space.
	ErrSpaceUnavailable = errors.New("space unavailable")
)

// Account and auth failures.
var (
	ErrEmailExists              = errors.New("email already exists")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrAccountDeleted           = errors.New("account deleted")
	ErrInvalidPassword          = errors.New("password mismatch")
	ErrHasActiveReservation     = errors.New("confirmed reservation exists")
	ErrInvalidRefreshToken      = errors.New("invalid refresh token")
	ErrExpiredRefreshToken      = errors.New("expired refresh token")
	ErrPasswordChangeIncomplete = errors.New("current and new password must both be provided")
	ErrSamePassword             = errors.New("new password equals current password")
)

// Catalog validation failures.
var (
	ErrInvalidPriceRange = errors.New("min price greater than max price")
	ErrInvalidSpaceInput = errors.New("invalid space attributes")
)
