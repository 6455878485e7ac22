package employee

import (
	"go-attendly/internal/middleware"
	"go-attendly/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.RBACAuthorize(rbacService, "employee", "read"), h.GetAll)
		employees.GET("/options", middleware.RBACAuthorize(rbacService, "employee", "read"), h.GetOptions)
		employees.GET("/:id", middleware.RBACAuthorize(rbacService, "profile", "read"), h.GetById)
		employees.POST("", middleware.RBACAuthorize(rbacService, "employee", "manage"), h.Create)
		employees.PUT("/:id", middleware.RBACAuthorize(rbacService, "profile", "write"), h.UpdateProfile)
		employees.DELETE("/:id", middleware.RBACAuthorize(rbacService, "employee", "manage"), h.Delete)
	}
}
