package holiday

type CreateHolidayRequest struct {
	Name        string  `json:"name" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	HolidayType string  `json:"holiday_type" binding:"required,oneof=NATIONAL REGIONAL COMPANY"`
	Description *string `json:"description"`
	IsOptional  bool    `json:"is_optional"`
}

type UpdateHolidayRequest struct {
	Name        string  `json:"name" binding:"required"`
	HolidayType string  `json:"holiday_type" binding:"required,oneof=NATIONAL REGIONAL COMPANY"`
	Description *string `json:"description"`
	IsOptional  bool    `json:"is_optional"`
}

type HolidayResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	HolidayType string  `json:"holiday_type"`
	Description *string `json:"description,omitempty"`
	IsOptional  bool    `json:"is_optional"`
	CreatedBy   string  `json:"created_by"`
	PendingSync bool    `json:"pending_sync,omitempty"`
}
