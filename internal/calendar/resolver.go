package calendar

import "time"

type Status string

const (
	StatusHoliday Status = "HOLIDAY"
	StatusCompOff Status = "COMP_OFF"
	StatusLeave   Status = "LEAVE"
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusFuture  Status = "FUTURE"
)

// DayFacts adalah fakta mentah satu tanggal untuk satu karyawan,
// sudah difilter: hanya request APPROVED yang boleh diisi true.
type DayFacts struct {
	IsHoliday     bool
	HasCompOff    bool
	HasLeave      bool
	HasAttendance bool
}

// Resolve memetakan fakta satu hari ke tepat satu status.
// Prioritas: holiday > comp-off > leave > kehadiran. Tanggal tanpa
// fakta apa pun hanya dihitung absen kalau sudah lewat; hari ini
// masih berjalan, jadi belum bisa divonis absen.
func Resolve(date, today time.Time, facts DayFacts) Status {
	switch {
	case facts.IsHoliday:
		return StatusHoliday
	case facts.HasCompOff:
		return StatusCompOff
	case facts.HasLeave:
		return StatusLeave
	case facts.HasAttendance:
		return StatusPresent
	case date.Before(today):
		return StatusAbsent
	default:
		return StatusFuture
	}
}
