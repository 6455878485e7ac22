package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	today     = time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	yesterday = today.AddDate(0, 0, -1)
	tomorrow  = today.AddDate(0, 0, 1)
)

func TestResolve_Precedence(t *testing.T) {
	// Hari libur menang atas semua fakta lain
	all := DayFacts{IsHoliday: true, HasCompOff: true, HasLeave: true, HasAttendance: true}
	assert.Equal(t, StatusHoliday, Resolve(yesterday, today, all))

	// Tanpa holiday, comp-off menang atas leave
	assert.Equal(t, StatusCompOff, Resolve(yesterday, today, DayFacts{
		HasCompOff: true, HasLeave: true, HasAttendance: true,
	}))

	assert.Equal(t, StatusLeave, Resolve(yesterday, today, DayFacts{
		HasLeave: true, HasAttendance: true,
	}))

	assert.Equal(t, StatusPresent, Resolve(yesterday, today, DayFacts{
		HasAttendance: true,
	}))
}

func TestResolve_EmptyDayDependsOnToday(t *testing.T) {
	assert.Equal(t, StatusAbsent, Resolve(yesterday, today, DayFacts{}))
	assert.Equal(t, StatusFuture, Resolve(today, today, DayFacts{}), "today is still in progress, not absent")
	assert.Equal(t, StatusFuture, Resolve(tomorrow, today, DayFacts{}))
}

func TestResolve_HolidayBeatsLeaveOnNationalDay(t *testing.T) {
	// 26 Januari adalah hari libur nasional; cuti yang menimpa tanggal
	// itu tidak mengubah statusnya.
	republicDay := time.Date(2025, 1, 26, 0, 0, 0, 0, time.Local)
	status := Resolve(republicDay, today, DayFacts{IsHoliday: true, HasLeave: true})
	assert.Equal(t, StatusHoliday, status)
}

func TestResolve_Totality(t *testing.T) {
	// Setiap kombinasi fakta dan posisi tanggal menghasilkan tepat satu status
	dates := []time.Time{yesterday, today, tomorrow}
	for _, d := range dates {
		for i := 0; i < 16; i++ {
			facts := DayFacts{
				IsHoliday:     i&1 != 0,
				HasCompOff:    i&2 != 0,
				HasLeave:      i&4 != 0,
				HasAttendance: i&8 != 0,
			}
			status := Resolve(d, today, facts)
			assert.Contains(t, []Status{
				StatusHoliday, StatusCompOff, StatusLeave,
				StatusPresent, StatusAbsent, StatusFuture,
			}, status)
		}
	}
}
