package employee

import (
	"context"
	"strconv"

	"github.com/Shivshady23/employee-payroll-system/internal/shared/counter"
)

const (
	employeeCodeCounter = "employee_code"

	// firstEmployeeCode is the code of the first employee ever created.
	firstEmployeeCode = 1000
)

// CodeAllocator issues unique, strictly increasing employee codes. Codes may
// have gaps when a creation fails after allocation; they are never reused.
//
//go:generate mockgen -source=allocator.go -destination=mock/allocator_mock.go -package=mock
type CodeAllocator interface {
	Allocate(ctx context.Context) (string, error)
}

type codeAllocator struct {
	counter counter.Repository
}

func NewCodeAllocator(counterRepo counter.Repository) CodeAllocator {
	return &codeAllocator{counter: counterRepo}
}

func (a *codeAllocator) Allocate(ctx context.Context) (string, error) {
	next, err := a.counter.GetNextValue(ctx, employeeCodeCounter, firstEmployeeCode)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(next, 10), nil
}
