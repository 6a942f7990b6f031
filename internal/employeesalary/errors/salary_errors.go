package salaryerrors

import (
	"net/http"

	"github.com/Shivshady23/employee-payroll-system/internal/shared/apperror"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"No salary record exists for this employee",
		http.StatusNotFound,
	)
	ErrSalaryConflict = apperror.New(
		apperror.CodeConflict,
		"Concurrent salary update, please retry",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
)
