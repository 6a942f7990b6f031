package employee

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	employeeerrors "github.com/Shivshady23/employee-payroll-system/internal/employee/errors"
	"github.com/Shivshady23/employee-payroll-system/internal/shared/apperror"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.ErrUnavailable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_employees_code":
				return employeeerrors.ErrEmployeeCodeConflict
			case "uq_employees_email", "uq_users_email":
				// The email may collide on the credential table instead of
				// the employee table when it matches a non-employee account.
				return employeeerrors.ErrEmailAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employees_code") {
		return employeeerrors.ErrEmployeeCodeConflict
	}
	if strings.Contains(errMsg, "duplicate key value") &&
		(strings.Contains(errMsg, "uq_employees_email") || strings.Contains(errMsg, "uq_users_email")) {
		return employeeerrors.ErrEmailAlreadyExists
	}

	return err
}
