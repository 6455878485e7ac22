package notification

type CreateNotificationInput struct {
	RecipientID   string
	Category      string
	Title         string
	Message       string
	ReferenceType *string
	ReferenceID   *string
}

type NotificationResponse struct {
	ID            string  `json:"id"`
	RecipientID   string  `json:"recipient_id"`
	Category      string  `json:"category"`
	Title         string  `json:"title"`
	Message       string  `json:"message"`
	ReferenceType *string `json:"reference_type,omitempty"`
	ReferenceID   *string `json:"reference_id,omitempty"`
	IsRead        bool    `json:"is_read"`
	ReadAt        *string `json:"read_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
	PendingSync   bool    `json:"pending_sync,omitempty"`
}
