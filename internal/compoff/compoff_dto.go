package compoff

type CreateCompOffRequest struct {
	WorkDate    string `json:"work_date" binding:"required"`
	CompOffDate string `json:"comp_off_date" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
}

type RejectCompOffRequest struct {
	ReviewerComment string `json:"reviewer_comment" binding:"required"`
}

type ApproveCompOffRequest struct {
	ReviewerComment *string `json:"reviewer_comment"`
}

type CompOffResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	WorkDate        string  `json:"work_date"`
	CompOffDate     string  `json:"comp_off_date"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	AppliedAt       string  `json:"applied_at"`
	ReviewedBy      *string `json:"reviewed_by,omitempty"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
	ReviewerComment *string `json:"reviewer_comment,omitempty"`
	PendingSync     bool    `json:"pending_sync,omitempty"`
}
