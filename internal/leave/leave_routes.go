package leave

import (
	"time"

	"go-attendly/internal/middleware"
	"go-attendly/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), h.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), h.GetByID)
		leaves.POST("",
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			middleware.RateLimitByUser(5, 10),
			middleware.Idempotency(rdb, 10*time.Minute),
			h.Create,
		)

		review := leaves.Group("")
		review.Use(
			middleware.RBACAuthorize(rbacService, "leave", "approve"),
			middleware.RateLimitByUser(5, 10),
			middleware.Idempotency(rdb, 10*time.Minute),
		)
		{
			review.POST("/:id/approve", h.Approve)
			review.POST("/:id/reject", h.Reject)
		}
	}
}
