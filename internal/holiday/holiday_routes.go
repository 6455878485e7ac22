package holiday

import (
	"go-attendly/internal/middleware"
	"go-attendly/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "holiday", "read"), h.GetAll)
		holidays.GET("/date/:date", middleware.RBACAuthorize(rbacService, "holiday", "read"), h.GetByDate)

		manage := holidays.Group("")
		manage.Use(
			middleware.RBACAuthorize(rbacService, "holiday", "manage"),
			middleware.RateLimitByUser(5, 10),
		)
		{
			manage.POST("", h.Create)
			manage.PUT("/:id", h.Update)
			manage.DELETE("/:id", h.Delete)
		}
	}
}
