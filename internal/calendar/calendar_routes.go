package calendar

import (
	"go-attendly/internal/middleware"
	"go-attendly/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	cal := r.Group("/calendar")
	cal.Use(middleware.AuthMiddleware())
	cal.Use(middleware.RBACAuthorize(rbacService, "calendar", "read"))
	{
		cal.GET("/day", h.GetDay)
		cal.GET("/month", h.GetMonth)
	}
}
