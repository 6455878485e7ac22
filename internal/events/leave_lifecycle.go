package events

import "time"

const (
	LeaveRequestedTopic = "attendly.leave.requested.v1"
	LeaveReviewedTopic  = "attendly.leave.reviewed.v1"
)

type LeaveRequestedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

type LeaveReviewedEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id"`
	LeaveID         string    `json:"leave_id"`
	EmployeeID      string    `json:"employee_id"`
	ReviewerID      string    `json:"reviewer_id"`
	Status          string    `json:"status"`
	ReviewerComment *string   `json:"reviewer_comment,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
