package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Shivshady23/employee-payroll-system/internal/accesspolicy"
	"github.com/Shivshady23/employee-payroll-system/internal/auth"
	"github.com/Shivshady23/employee-payroll-system/internal/employee"
	"github.com/Shivshady23/employee-payroll-system/internal/employeesalary"
	"github.com/Shivshady23/employee-payroll-system/internal/shared/connection"
)

const infraDDL = `
CREATE TABLE IF NOT EXISTS counters (
	name varchar(100) PRIMARY KEY,
	last_value bigint NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS outbox_events (
	id uuid PRIMARY KEY,
	request_id varchar(100),
	aggregate_type varchar(100) NOT NULL,
	aggregate_id uuid NOT NULL,
	event_type varchar(100) NOT NULL,
	topic varchar(255) NOT NULL,
	payload jsonb NOT NULL,
	status varchar(20) NOT NULL DEFAULT 'pending',
	retry_count int NOT NULL DEFAULT 0,
	error_message varchar(500),
	next_retry_at timestamptz,
	processed_at timestamptz,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_outbox_events_status ON outbox_events (status, created_at);
`

// Seeds the schema and the two bootstrap operator accounts. Running it twice
// is safe: existing accounts are left untouched.
func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&employeesalary.SalaryRecord{},
		&auth.User{},
	); err != nil {
		logger.Fatal("migrate schema failed", zap.Error(err))
	}

	if err := gormDB.Exec(infraDDL).Error; err != nil {
		logger.Fatal("create infrastructure tables failed", zap.Error(err))
	}

	seedOperator(gormDB, logger, envOrDefault("SEED_ADMIN_EMAIL", "admin@example.com"),
		os.Getenv("SEED_ADMIN_PASSWORD"), accesspolicy.RoleAdmin)
	seedOperator(gormDB, logger, envOrDefault("SEED_SUPERADMIN_EMAIL", "superadmin@example.com"),
		os.Getenv("SEED_SUPERADMIN_PASSWORD"), accesspolicy.RoleSuperadmin)

	logger.Info("seed complete")
}

func seedOperator(gormDB *gorm.DB, logger *zap.Logger, email, password string, role accesspolicy.Role) {
	var count int64
	if err := gormDB.Model(&auth.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		logger.Fatal("check operator account failed", zap.String("email", email), zap.Error(err))
	}
	if count > 0 {
		logger.Info("operator account already present", zap.String("email", email))
		return
	}

	if password == "" {
		generated, err := auth.GeneratePassword(12)
		if err != nil {
			logger.Fatal("generate operator password failed", zap.Error(err))
		}
		password = generated
		logger.Info("generated operator password",
			zap.String("email", email),
			zap.String("password", password),
		)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		logger.Fatal("hash operator password failed", zap.Error(err))
	}

	user := &auth.User{
		ID:       uuid.New(),
		Name:     string(role),
		Email:    email,
		Password: hashed,
		Role:     string(role),
		IsActive: true,
	}
	if err := gormDB.Create(user).Error; err != nil {
		logger.Fatal("create operator account failed", zap.String("email", email), zap.Error(err))
	}

	logger.Info("operator account created", zap.String("email", email), zap.String("role", string(role)))
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
