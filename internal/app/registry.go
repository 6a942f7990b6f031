package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Shivshady23/employee-payroll-system/internal/accesspolicy"
	"github.com/Shivshady23/employee-payroll-system/internal/auth"
	"github.com/Shivshady23/employee-payroll-system/internal/employee"
	"github.com/Shivshady23/employee-payroll-system/internal/employeesalary"
	"github.com/Shivshady23/employee-payroll-system/internal/messaging/kafka"
	"github.com/Shivshady23/employee-payroll-system/internal/shared/counter"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	salaryRepo := employeesalary.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Access policy ---
	policy, err := accesspolicy.NewPolicy()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo)
	codeAllocator := employee.NewCodeAllocator(counterRepo)
	employeeService := employee.NewService(db, employeeRepo, authRepo, codeAllocator, policy, outboxRepo, rdb)
	salaryService := employeesalary.NewService(salaryRepo, employeeRepo, policy)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandlerWithRedis(employeeService, rdb)
	salaryHandler := employeesalary.NewHandler(salaryService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, policy, rdb)
		employeesalary.RegisterRoutes(api, salaryHandler, policy)
	}

	return nil
}
