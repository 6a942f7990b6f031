package employeesalary

import (
	"github.com/Shivshady23/employee-payroll-system/internal/payroll"
)

type UpsertSalaryRequest struct {
	Basic      float64 `json:"basic" binding:"gte=0"`
	HRA        float64 `json:"hra" binding:"gte=0"`
	Conveyance float64 `json:"conveyance" binding:"gte=0"`
}

// SalaryResponse is the stored breakdown plus the owning employee's identity.
type SalaryResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	EmployeeCode string `json:"employee_code"`

	payroll.Breakdown

	UpdatedAt string `json:"updated_at"`
}
