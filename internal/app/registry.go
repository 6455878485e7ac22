package app

import (
	"database/sql"

	"go-attendly/internal/attendance"
	"go-attendly/internal/auth"
	"go-attendly/internal/calendar"
	"go-attendly/internal/compoff"
	"go-attendly/internal/employee"
	"go-attendly/internal/holiday"
	"go-attendly/internal/leave"
	"go-attendly/internal/messaging/kafka"
	"go-attendly/internal/notification"
	"go-attendly/internal/rbac"
	"go-attendly/internal/rbac/infra"
	"go-attendly/internal/shared/counter"
	"go-attendly/internal/shared/fallback"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	compoffRepo := compoff.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	fallbackStore := fallback.NewStore(rdb)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo, fallbackStore)
	authService := auth.NewService(db, authRepo, employeeRepo, counterRepo)
	calendarService := calendar.NewService(holidayRepo, leaveRepo, compoffRepo, attendanceRepo)
	compoffService := compoff.NewService(db, compoffRepo, outboxRepo, fallbackStore)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, rdb)
	holidayService := holiday.NewService(holidayRepo, rdb, fallbackStore)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo, fallbackStore)
	notificationService := notification.NewService(notificationRepo, fallbackStore)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	authHandler := auth.NewHandler(authService)
	calendarHandler := calendar.NewHandler(calendarService)
	compoffHandler := compoff.NewHandler(compoffService)
	employeeHandler := employee.NewHandler(employeeService)
	holidayHandler := holiday.NewHandler(holidayService)
	leaveHandler := leave.NewHandler(leaveService)
	notificationHandler := notification.NewHandler(notificationService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb)
		calendar.RegisterRoutes(api, calendarHandler, rbacService)
		compoff.RegisterRoutes(api, compoffHandler, rbacService, rdb)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		holiday.RegisterRoutes(api, holidayHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
	}

	return nil
}
