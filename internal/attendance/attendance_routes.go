package attendance

import (
	"time"

	"go-attendly/internal/middleware"
	"go-attendly/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendances.GET("/today", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetToday)

		mutate := attendances.Group("")
		mutate.Use(
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			middleware.RateLimitByUser(5, 10),
			middleware.Idempotency(rdb, 10*time.Minute),
		)
		{
			mutate.POST("/check-in", h.CheckIn)
			mutate.POST("/check-out", h.CheckOut)
			mutate.POST("/break/start", h.StartBreak)
			mutate.POST("/break/end", h.EndBreak)
		}
	}
}
