package attendance

type AttendanceResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	AttendanceDate    string   `json:"attendance_date"`
	CheckIn           string   `json:"check_in"`
	CheckOut          *string  `json:"check_out,omitempty"`
	HoursWorked       float64  `json:"hours_worked"`
	HoursSoFar        *float64 `json:"hours_so_far,omitempty"`
	BreakStart        *string  `json:"break_start,omitempty"`
	TotalBreakMinutes int      `json:"total_break_minutes"`
	IsOnBreak         bool     `json:"is_on_break"`
	HasUsedBreak      bool     `json:"has_used_break"`
	PendingSync       bool     `json:"pending_sync,omitempty"`
}
