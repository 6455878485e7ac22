package attendance

import (
	"math"
	"time"
)

// hoursWorked menghitung jam kerja: durasi check-in sampai check-out
// dikurangi akumulasi break, floor di nol, dibulatkan 2 desimal.
func hoursWorked(checkIn, checkOut time.Time, breakMinutes int) float64 {
	hours := checkOut.Sub(checkIn).Hours() - float64(breakMinutes)/60
	if hours < 0 {
		hours = 0
	}
	return math.Round(hours*100) / 100
}

// breakMinutes menghitung durasi break dalam menit penuh, minimal nol.
func breakMinutes(start, end time.Time) int {
	minutes := int(end.Sub(start).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// dateOnly memotong timestamp ke tengah malam kalender lokal.
// Jangan pakai Truncate(24h): itu bekerja di UTC dan menggeser tanggal.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
