package auth

type RegisterRequest struct {
	FullName   string  `json:"full_name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required"`
	Role       string  `json:"role" binding:"required,oneof=EMPLOYEE ADMIN"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	Phone      *string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=EMPLOYEE ADMIN"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type MeResponse struct {
	UserID         string  `json:"user_id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeNumber string  `json:"employee_number"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	Department     *string `json:"department"`
	Position       *string `json:"position"`
	Phone          *string `json:"phone"`
	IsVerified     bool    `json:"is_verified"`
}

type RegisterResponse struct {
	UserID         string `json:"user_id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeNumber string `json:"employee_number"`
	Email          string `json:"email"`
	Role           string `json:"role"`
}
