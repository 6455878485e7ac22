package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHoursWorked(t *testing.T) {
	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	t.Run("eight hour span with single 30 minute break", func(t *testing.T) {
		out := in.Add(8 * time.Hour)
		assert.Equal(t, 7.5, hoursWorked(in, out, 30))
	})

	t.Run("no break", func(t *testing.T) {
		out := in.Add(8 * time.Hour)
		assert.Equal(t, 8.0, hoursWorked(in, out, 0))
	})

	t.Run("break longer than span floors at zero", func(t *testing.T) {
		out := in.Add(30 * time.Minute)
		assert.Equal(t, 0.0, hoursWorked(in, out, 120))
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		out := in.Add(7*time.Hour + 20*time.Minute)
		assert.Equal(t, 7.33, hoursWorked(in, out, 0))
	})
}

func TestBreakMinutes(t *testing.T) {
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

	assert.Equal(t, 30, breakMinutes(start, start.Add(30*time.Minute)))
	assert.Equal(t, 0, breakMinutes(start, start))
	assert.Equal(t, 0, breakMinutes(start, start.Add(-time.Minute)))
}

func TestDateOnly_KeepsLocalCalendarDay(t *testing.T) {
	// 00:30 waktu lokal harus tetap di hari yang sama,
	// bukan bergeser karena konversi UTC.
	late := time.Date(2025, 1, 26, 0, 30, 0, 0, time.Local)
	got := dateOnly(late)

	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 26, got.Day())
	assert.Equal(t, 0, got.Hour())
}
