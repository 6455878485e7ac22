package compoff

import (
	"time"

	"go-attendly/internal/middleware"
	"go-attendly/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	compoffs := r.Group("/comp-offs")
	compoffs.Use(middleware.AuthMiddleware())
	{
		compoffs.GET("", middleware.RBACAuthorize(rbacService, "compoff", "read"), h.GetAll)
		compoffs.GET("/:id", middleware.RBACAuthorize(rbacService, "compoff", "read"), h.GetByID)
		compoffs.POST("",
			middleware.RBACAuthorize(rbacService, "compoff", "create"),
			middleware.RateLimitByUser(5, 10),
			middleware.Idempotency(rdb, 10*time.Minute),
			h.Create,
		)

		review := compoffs.Group("")
		review.Use(
			middleware.RBACAuthorize(rbacService, "compoff", "approve"),
			middleware.RateLimitByUser(5, 10),
			middleware.Idempotency(rdb, 10*time.Minute),
		)
		{
			review.POST("/:id/approve", h.Approve)
			review.POST("/:id/reject", h.Reject)
		}
	}
}
