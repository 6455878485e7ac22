package auth

import (
	"go-attendly/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	authGroup := r.Group("/auth")
	// Endpoint tanpa auth dibatasi per IP untuk meredam brute force
	authGroup.Use(middleware.RateLimitByIP(5, 10))
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
	}

	r.GET("/auth/me", middleware.AuthMiddleware(), h.Me)
}
