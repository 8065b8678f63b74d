package app

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"timecraft/internal/balance"
	"timecraft/internal/employee"
	"timecraft/internal/messaging/kafka"
	"timecraft/internal/middleware"
	"timecraft/internal/position"
	"timecraft/internal/rbac"
	"timecraft/internal/salary"
	"timecraft/internal/timeoff"
	"timecraft/internal/timesheet"
	"timecraft/internal/user"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	publisher kafka.Publisher,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	positionRepo := position.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	timeoffRepo := timeoff.NewRepository(gormDB)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	userService := user.NewService(db, userRepo, employeeRepo, publisher)
	employeeService := employee.NewService(db, employeeRepo, balanceRepo)
	positionService := position.NewService(db, positionRepo, rdb)
	salaryService := salary.NewService(db, salaryRepo)
	timesheetService := timesheet.NewService(db, timesheetRepo)
	balanceService := balance.NewService(db, balanceRepo)
	timeoffService := timeoff.NewService(db, timeoffRepo, employeeRepo, userRepo, balanceRepo, publisher)

	// --- Handlers ---
	userHandler := user.NewHandler(userService)
	employeeHandler := employee.NewHandler(employeeService)
	positionHandler := position.NewHandler(positionService)
	salaryHandler := salary.NewHandler(salaryService)
	timesheetHandler := timesheet.NewHandler(timesheetService)
	balanceHandler := balance.NewHandler(balanceService)
	timeoffHandler := timeoff.NewHandler(timeoffService)

	loginLimiter := middleware.NewIPRateLimiter(rate.Every(6*time.Second), 5)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		user.RegisterRoutes(api, userHandler, rbacService, loginLimiter)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		position.RegisterRoutes(api, positionHandler, rbacService)
		salary.RegisterRoutes(api, salaryHandler, rbacService)
		timesheet.RegisterRoutes(api, timesheetHandler, rbacService)
		balance.RegisterRoutes(api, balanceHandler, rbacService)
		timeoff.RegisterRoutes(api, timeoffHandler, rbacService)
	}

	return nil
}
