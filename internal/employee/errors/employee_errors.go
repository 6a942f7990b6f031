package employeeerrors

import (
	"net/http"

	"github.com/Shivshady23/employee-payroll-system/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeCodeConflict = apperror.New(
		apperror.CodeConflict,
		"Employee code collision, please retry",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrBelowMinimumAge = apperror.New(
		apperror.CodeInvalidInput,
		"Employee must be at least 18 years old at the date of joining",
		http.StatusBadRequest,
	)
)
