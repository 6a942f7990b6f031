package payrollerrors

import (
	"net/http"

	"github.com/Shivshady23/employee-payroll-system/internal/shared/apperror"
)

var (
	ErrNegativeComponent = apperror.New(
		apperror.CodeInvalidInput,
		"Salary components must be zero or positive",
		http.StatusBadRequest,
	)
	ErrNonFiniteComponent = apperror.New(
		apperror.CodeInvalidInput,
		"Salary components must be finite numbers",
		http.StatusBadRequest,
	)
	ErrComponentTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"Salary components cannot exceed 1,000,000",
		http.StatusBadRequest,
	)
	ErrTotalTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"Total salary cannot exceed 1,000,000",
		http.StatusBadRequest,
	)
)
