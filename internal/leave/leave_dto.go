package leave

type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required,oneof=SICK VACATION PERSONAL EMERGENCY"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type RejectLeaveRequest struct {
	ReviewerComment string `json:"reviewer_comment" binding:"required"`
}

type ApproveLeaveRequest struct {
	ReviewerComment *string `json:"reviewer_comment"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	LeaveType       string  `json:"leave_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	AppliedAt       string  `json:"applied_at"`
	ReviewedBy      *string `json:"reviewed_by,omitempty"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
	ReviewerComment *string `json:"reviewer_comment,omitempty"`
	PendingSync     bool    `json:"pending_sync,omitempty"`
}
