package auth

import (
	"os"
	"time"

	autherrors "go-attendly/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// Access token pendek: kedaluwarsa berarti sesi idle ditutup paksa.
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

type tokenClaims struct {
	UserID     string
	EmployeeID string
	Role       string
}

func generateToken(c tokenClaims, tokenType string, ttl time.Duration, issuedAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id":     c.UserID,
		"employee_id": c.EmployeeID,
		"role":        c.Role,
		"token_type":  tokenType,
		"iat":         issuedAt.Unix(),
		"exp":         issuedAt.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

// parseRefreshToken memvalidasi refresh token dan mengembalikan claims
// identitas. Access token ditolak sebagai refresh token.
func parseRefreshToken(tokenString string) (tokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidRefreshToken
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return tokenClaims{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return tokenClaims{}, autherrors.ErrInvalidRefreshToken
	}
	if tokenType, _ := claims["token_type"].(string); tokenType != "refresh" {
		return tokenClaims{}, autherrors.ErrInvalidRefreshToken
	}

	userID, _ := claims["user_id"].(string)
	employeeID, _ := claims["employee_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || employeeID == "" {
		return tokenClaims{}, autherrors.ErrInvalidRefreshToken
	}

	return tokenClaims{UserID: userID, EmployeeID: employeeID, Role: role}, nil
}
