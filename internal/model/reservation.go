package model

import "time"

// Reservation status values stored in reservations.status. A
// reservation is created CONFIRMED and may transition exactly once
// to CANCELLED. Rows are never deleted.
const (
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
)

// CancelLeadTime is the cancellation deadline: a reservation may be
// cancelled only while more than this much time remains before its
// start.
const CancelLeadTime = 24 * time.Hour

// Reservation mirrors the `reservations` table. Start and end times
// are wall-clock values on exact hour boundaries with a half-open
// [StartTime, EndTime) meaning: a reservation ending at 12:00 does
// not conflict with one starting at 12:00. TotalPrice is computed
// when the row is created and never changes afterwards, even if the
// space's hourly price does.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user that booked the slot.
//  SpaceID     – target space.
//  StartTime   – inclusive start, hour-aligned.
//  EndTime     – exclusive end, hour-aligned.
//  PeopleCount – party size, validated against capacity at creation.
//  TotalPrice  – hours × price_per_hour, frozen at creation.
//  Purpose     – optional free-text purpose.
//  Status      – CONFIRMED or CANCELLED.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Reservation struct {
	ID          uint64    // reservations.id
	UserID      uint64    // reservations.user_id
	SpaceID     uint64    // reservations.space_id
	StartTime   time.Time // reservations.start_time
	EndTime     time.Time // reservations.end_time
	PeopleCount int       // reservations.people_count
	TotalPrice  int       // reservations.total_price
	Purpose     string    // reservations.purpose
	Status      string    // reservations.status
	CreatedAt   time.Time // reservations.created_at
	UpdatedAt   time.Time // reservations.updated_at
}

// Hours returns the whole number of hours covered by the slot.
func (r Reservation) Hours() int {
	return int(r.EndTime.Sub(r.StartTime) / time.Hour)
}

// CancelDeadline returns the last instant at which the reservation
// can still be cancelled.
func (r Reservation) CancelDeadline() time.Time {
	return r.StartTime.Add(-CancelLeadTime)
}

// ReservedTime is the public availability projection of a confirmed
// reservation: just the occupied hour-of-day range, so clients can
// render a day grid without seeing who booked or why.
type ReservedTime struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// OnHourBoundary reports whether t falls exactly on an hour (zero
// minutes, seconds and nanoseconds).
func OnHourBoundary(t time.Time) bool {
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// Overlaps reports whether the half-open ranges [s1,e1) and [s2,e2)
// intersect. Touching boundaries do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
