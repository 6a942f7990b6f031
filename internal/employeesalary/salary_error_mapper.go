package employeesalary

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	salaryerrors "github.com/Shivshady23/employee-payroll-system/internal/employeesalary/errors"
	"github.com/Shivshady23/employee-payroll-system/internal/shared/apperror"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salaryerrors.ErrSalaryNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.ErrUnavailable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_salary_records_employee" {
			return salaryerrors.ErrSalaryConflict
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_salary_records_employee") {
		return salaryerrors.ErrSalaryConflict
	}

	return err
}
