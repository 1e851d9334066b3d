// Package queue defines the notification messages exchanged over
// the message broker and the worker that delivers them. Booking
// commits never wait on delivery: the workflow publishes an event
// and moves on, and the consumer turns events into outbound mail on
// its own schedule.
package queue

import "time"

// Event kinds carried in NotificationEvent.Kind.
const (
	KindReservationConfirmed = "reservation.confirmed"
	KindReservationCancelled = "reservation.cancelled"
)

// NotificationEvent is published when a reservation is confirmed or
// cancelled. It carries everything the mail worker needs to render
// and address the message without querying the primary database.
type NotificationEvent struct {
	Kind          string    `json:"kind"`
	ReservationID uint64    `json:"reservation_id"`
	UserID        uint64    `json:"user_id"`
	Email         string    `json:"email"`
	SpaceName     string    `json:"space_name"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	PeopleCount   int       `json:"people_count"`
	TotalPrice    int       `json:"total_price"`
	OccurredAt    time.Time `json:"occurred_at"`
}
