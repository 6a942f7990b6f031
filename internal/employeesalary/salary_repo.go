package employeesalary

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// SalaryWithEmployee is a salary record joined with the owning employee's
// display fields.
type SalaryWithEmployee struct {
	SalaryRecord
	EmployeeName string
	EmployeeCode string
}

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, rec *SalaryRecord) error
	FindByEmployeeID(ctx context.Context, employeeID string) (*SalaryWithEmployee, error)
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	sqlDB, _ := db.DB()
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db:    r.db,
		sqlDB: r.sqlDB,
		tx:    tx,
	}
}

// Upsert writes the record in a single statement. The conflict target is the
// unique employee index, so exactly one row per employee survives no matter
// how many writers race; the row keeps its original id and created_at.
func (r *repository) Upsert(ctx context.Context, rec *SalaryRecord) error {
	query := `
INSERT INTO salary_records (
	id, employee_id,
	basic, hra, conveyance, total_earnings,
	employee_pf, employer_pf_total, employer_pension, employer_pf,
	esic_applicable, employee_esic, employer_esic,
	net_pay, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())
ON CONFLICT (employee_id) DO UPDATE SET
	basic = EXCLUDED.basic,
	hra = EXCLUDED.hra,
	conveyance = EXCLUDED.conveyance,
	total_earnings = EXCLUDED.total_earnings,
	employee_pf = EXCLUDED.employee_pf,
	employer_pf_total = EXCLUDED.employer_pf_total,
	employer_pension = EXCLUDED.employer_pension,
	employer_pf = EXCLUDED.employer_pf,
	esic_applicable = EXCLUDED.esic_applicable,
	employee_esic = EXCLUDED.employee_esic,
	employer_esic = EXCLUDED.employer_esic,
	net_pay = EXCLUDED.net_pay,
	updated_at = now()
RETURNING id, created_at, updated_at
`
	return r.querier().QueryRowContext(ctx, query,
		rec.ID, rec.EmployeeID,
		rec.Basic, rec.HRA, rec.Conveyance, rec.TotalEarnings,
		rec.EmployeePF, rec.EmployerPFTotal, rec.EmployerPension, rec.EmployerPF,
		rec.ESICApplicable, rec.EmployeeESIC, rec.EmployerESIC,
		rec.NetPay,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID string) (*SalaryWithEmployee, error) {
	var row SalaryWithEmployee
	err := r.db.WithContext(ctx).
		Table("salary_records").
		Select("salary_records.*, employees.name AS employee_name, employees.employee_code AS employee_code").
		Joins("JOIN employees ON employees.id = salary_records.employee_id").
		Where("salary_records.employee_id = ?", employeeID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) querier() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
