package queue

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureMailer struct {
	to, subject, body string
	err               error
}

func (m *captureMailer) Send(to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

func sampleEvent(kind string) NotificationEvent {
	start := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	return NotificationEvent{
		Kind:          kind,
		ReservationID: 77,
		UserID:        9,
		Email:         "kim@example.com",
		SpaceName:     "Studio A",
		StartTime:     start,
		EndTime:       start.Add(2 * time.Hour),
		PeopleCount:   4,
		TotalPrice:    20000,
		OccurredAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestRenderMail(t *testing.T) {
	subject, body := RenderMail(sampleEvent(KindReservationConfirmed))
	assert.Contains(t, subject, "confirmed")
	assert.Contains(t, body, "Studio A")
	assert.Contains(t, body, "2026-03-02 12:00 - 2026-03-02 14:00")
	assert.Contains(t, body, "People: 4")

	subject, _ = RenderMail(sampleEvent(KindReservationCancelled))
	assert.Contains(t, subject, "cancelled")

	subject, _ = RenderMail(sampleEvent("reservation.something-new"))
	assert.Contains(t, subject, "update", "unknown kinds still render")
}

func TestHandleMessage(t *testing.T) {
	ev := sampleEvent(KindReservationConfirmed)
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	t.Run("delivers to the event's address", func(t *testing.T) {
		m := &captureMailer{}
		require.NoError(t, handleMessage(body, m))
		assert.Equal(t, "kim@example.com", m.to)
		assert.Contains(t, m.subject, "confirmed")
	})

	t.Run("garbage payload fails without sending", func(t *testing.T) {
		m := &captureMailer{}
		assert.Error(t, handleMessage([]byte("not json"), m))
		assert.Empty(t, m.to)
	})

	t.Run("mailer failure propagates", func(t *testing.T) {
		m := &captureMailer{err: errors.New("smtp down")}
		assert.Error(t, handleMessage(body, m))
	})
}
