package employee

type CreateEmployeeRequest struct {
	FullName       string  `json:"full_name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	EmployeeNumber string  `json:"employee_number"`
	Role           string  `json:"role" binding:"required,oneof=EMPLOYEE ADMIN"`
	Department     *string `json:"department"`
	Position       *string `json:"position"`
	Phone          *string `json:"phone"`
}

type UpdateProfileRequest struct {
	FullName   string  `json:"full_name" binding:"required"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	Phone      *string `json:"phone"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	EmployeeNumber string  `json:"employee_number"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	Department     *string `json:"department,omitempty"`
	Position       *string `json:"position,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	IsVerified     bool    `json:"is_verified"`
	CreatedAt      string  `json:"created_at"`
}
