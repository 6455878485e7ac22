package notification

import (
	"go-attendly/internal/middleware"
	"go-attendly/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, "notification", "read"), h.GetAll)

		write := notifications.Group("")
		write.Use(
			middleware.RBACAuthorize(rbacService, "notification", "write"),
			middleware.RateLimitByUser(5, 10),
		)
		{
			write.PATCH("/:id/read", h.MarkRead)
			write.PATCH("/read-all", h.MarkAllRead)
			write.DELETE("/:id", h.Delete)
		}
	}
}
