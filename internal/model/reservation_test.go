package model

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOnHourBoundary(t *testing.T) {
	assert.True(t, OnHourBoundary(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
	assert.False(t, OnHourBoundary(time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)))
	assert.False(t, OnHourBoundary(time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC)))
	assert.False(t, OnHourBoundary(time.Date(2026, 3, 1, 12, 0, 0, 1, time.UTC)))
}

func TestOverlapsTouchingBoundaries(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	h := func(n int) time.Time { return base.Add(time.Duration(n) * time.Hour) }

	// [10,12) vs [12,14): touching, no overlap.
	assert.False(t, Overlaps(h(0), h(2), h(2), h(4)))
	assert.False(t, Overlaps(h(2), h(4), h(0), h(2)))
	// [10,12) vs [11,13): one shared hour.
	assert.True(t, Overlaps(h(0), h(2), h(1), h(3)))
	// containment both ways.
	assert.True(t, Overlaps(h(0), h(4), h(1), h(2)))
	assert.True(t, Overlaps(h(1), h(2), h(0), h(4)))
	// identical ranges.
	assert.True(t, Overlaps(h(0), h(2), h(0), h(2)))
}

// Overlaps must agree with hour-set intersection for any pair of
// hour-aligned ranges.
func TestOverlapsMatchesHourSets(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		s1 := rng.Intn(24)
		e1 := s1 + 1 + rng.Intn(6)
		s2 := rng.Intn(24)
		e2 := s2 + 1 + rng.Intn(6)

		shared := false
		for h := s1; h < e1; h++ {
			if h >= s2 && h < e2 {
				shared = true
				break
			}
		}

		got := Overlaps(
			base.Add(time.Duration(s1)*time.Hour), base.Add(time.Duration(e1)*time.Hour),
			base.Add(time.Duration(s2)*time.Hour), base.Add(time.Duration(e2)*time.Hour))
		assert.Equal(t, shared, got, "[%d,%d) vs [%d,%d)", s1, e1, s2, e2)
	}
}

func TestReservationHours(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r := Reservation{StartTime: start, EndTime: start.Add(3 * time.Hour)}
	assert.Equal(t, 3, r.Hours())
}

func TestCancelDeadline(t *testing.T) {
	start := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	r := Reservation{StartTime: start}
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), r.CancelDeadline())
}
