package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name string
		s1   string
		e1   string
		s2   string
		e2   string
		want bool
	}{
		{"полное вложение", "2026-05-01", "2026-08-01", "2026-06-01", "2026-07-01", true},
		{"частичное пересечение", "2026-05-01", "2026-06-15", "2026-06-01", "2026-07-15", true},
		{"совпадение границ считается пересечением", "2026-05-01", "2026-06-01", "2026-06-01", "2026-07-01", true},
		{"интервалы не соприкасаются", "2026-05-01", "2026-05-31", "2026-06-01", "2026-07-01", false},
		{"порядок аргументов не важен", "2026-06-01", "2026-07-01", "2026-05-01", "2026-05-15", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntervalsOverlap(date(tt.s1), date(tt.e1), date(tt.s2), date(tt.e2))
			assert.Equal(t, tt.want, got)

			// Предикат симметричен
			mirror := IntervalsOverlap(date(tt.s2), date(tt.e2), date(tt.s1), date(tt.e1))
			assert.Equal(t, got, mirror)
		})
	}
}

func TestReservation_WithinCheckInWindow(t *testing.T) {
	start := date("2026-05-10")
	r := &Reservation{StartDate: start, Status: StatusConfirmed}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"за 48 часов до начала - рано", start.Add(-48 * time.Hour), false},
		{"за 23 часа до начала - можно", start.Add(-23 * time.Hour), true},
		{"ровно в дату начала", start, true},
		{"через 24 часа после начала - граница окна", start.Add(24 * time.Hour), true},
		{"через 25 часов после начала - поздно", start.Add(25 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.WithinCheckInWindow(tt.now))
		})
	}
}

func TestReservation_EligibleForSelfCompletion(t *testing.T) {
	checkedInAt := date("2026-05-10")

	t.Run("через 5 дней после заселения - рано", func(t *testing.T) {
		r := &Reservation{Status: StatusCheckedIn, CheckedInAt: &checkedInAt}
		assert.False(t, r.EligibleForSelfCompletion(checkedInAt.Add(5*24*time.Hour)))
	})

	t.Run("через 30 дней после заселения - можно", func(t *testing.T) {
		r := &Reservation{Status: StatusCheckedIn, CheckedInAt: &checkedInAt}
		assert.True(t, r.EligibleForSelfCompletion(checkedInAt.Add(30*24*time.Hour)))
	})

	t.Run("без заселения нельзя", func(t *testing.T) {
		r := &Reservation{Status: StatusConfirmed}
		assert.False(t, r.EligibleForSelfCompletion(date("2026-12-01")))
	})

	t.Run("после отмены нельзя независимо от срока", func(t *testing.T) {
		r := &Reservation{Status: StatusCanceled, CheckedInAt: &checkedInAt}
		assert.False(t, r.EligibleForSelfCompletion(checkedInAt.Add(90*24*time.Hour)))
	})
}

func TestReservation_StatusGuards(t *testing.T) {
	tests := []struct {
		status      ReservationStatus
		active      bool
		terminal    bool
		cancellable bool
		editable    bool
	}{
		{StatusConfirmed, true, false, true, true},
		{StatusCheckedIn, true, false, true, false},
		{StatusCompleted, false, true, false, false},
		{StatusCanceled, false, true, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r := &Reservation{Status: tt.status}
			assert.Equal(t, tt.active, r.IsActive())
			assert.Equal(t, tt.terminal, r.IsTerminal())
			assert.Equal(t, tt.cancellable, r.CanBeCancelled())
			assert.Equal(t, tt.editable, r.CanBeEdited())
		})
	}
}

func TestIsSupportedSlipSize(t *testing.T) {
	assert.True(t, IsSupportedSlipSize(26))
	assert.True(t, IsSupportedSlipSize(40))
	assert.True(t, IsSupportedSlipSize(50))
	assert.False(t, IsSupportedSlipSize(34))
	assert.False(t, IsSupportedSlipSize(0))
}
