package events

import "time"

const (
	CompOffRequestedTopic = "attendly.compoff.requested.v1"
	CompOffReviewedTopic  = "attendly.compoff.reviewed.v1"
)

type CompOffRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	CompOffID   string    `json:"compoff_id"`
	EmployeeID  string    `json:"employee_id"`
	WorkDate    string    `json:"work_date"`
	CompOffDate string    `json:"comp_off_date"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type CompOffReviewedEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id"`
	CompOffID       string    `json:"compoff_id"`
	EmployeeID      string    `json:"employee_id"`
	ReviewerID      string    `json:"reviewer_id"`
	Status          string    `json:"status"`
	ReviewerComment *string   `json:"reviewer_comment,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
