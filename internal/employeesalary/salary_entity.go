package employeesalary

import (
	"time"

	"github.com/google/uuid"
)

// SalaryRecord holds the current compensation for one employee. The unique
// index on employee_id is what makes the upsert atomic: concurrent writers
// race on the constraint, not on application state.
type SalaryRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_salary_records_employee"`

	Basic      float64 `gorm:"type:numeric(12,2);not null"`
	HRA        float64 `gorm:"type:numeric(12,2);not null;column:hra"`
	Conveyance float64 `gorm:"type:numeric(12,2);not null"`

	TotalEarnings float64 `gorm:"type:numeric(12,2);not null"`

	EmployeePF      int64 `gorm:"not null;column:employee_pf"`
	EmployerPFTotal int64 `gorm:"not null;column:employer_pf_total"`
	EmployerPension int64 `gorm:"not null"`
	EmployerPF      int64 `gorm:"not null;column:employer_pf"`

	ESICApplicable bool  `gorm:"not null;column:esic_applicable"`
	EmployeeESIC   int64 `gorm:"not null;column:employee_esic"`
	EmployerESIC   int64 `gorm:"not null;column:employer_esic"`

	NetPay float64 `gorm:"type:numeric(12,2);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
