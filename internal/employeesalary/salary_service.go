package employeesalary

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Shivshady23/employee-payroll-system/internal/accesspolicy"
	"github.com/Shivshady23/employee-payroll-system/internal/employee"
	employeeerrors "github.com/Shivshady23/employee-payroll-system/internal/employee/errors"
	salaryerrors "github.com/Shivshady23/employee-payroll-system/internal/employeesalary/errors"
	"github.com/Shivshady23/employee-payroll-system/internal/payroll"
	"github.com/Shivshady23/employee-payroll-system/internal/shared/apperror"
	"github.com/Shivshady23/employee-payroll-system/internal/shared/contextutil"
)

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, principal accesspolicy.Principal, employeeID string, req UpsertSalaryRequest) (SalaryResponse, error)
	Get(ctx context.Context, principal accesspolicy.Principal, employeeID string) (SalaryResponse, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	policy    *accesspolicy.Policy
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	employees employee.Repository,
	policy *accesspolicy.Policy,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employeesalary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeesalary.service")
	}
	return &service{
		repo:      repo,
		employees: employees,
		policy:    policy,
		logger:    l,
	}
}

func (s *service) Upsert(
	ctx context.Context,
	principal accesspolicy.Principal,
	employeeID string,
	req UpsertSalaryRequest,
) (SalaryResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	allowed, err := s.policy.Can(principal, accesspolicy.ActionUpsertSalary, "")
	if err != nil {
		return SalaryResponse{}, err
	}
	if !allowed {
		return SalaryResponse{}, apperror.ErrForbidden
	}

	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidEmployeeID
	}

	empl, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return SalaryResponse{}, err
	}

	breakdown, err := payroll.Compute(req.Basic, req.HRA, req.Conveyance)
	if err != nil {
		s.logger.Warn("salary computation rejected",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return SalaryResponse{}, err
	}

	rec := recordFromBreakdown(empID, breakdown)
	if err := s.repo.Upsert(ctx, rec); err != nil {
		s.logger.Error("salary upsert failed",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return SalaryResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("salary upsert success",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.Bool("esic_applicable", breakdown.ESICApplicable),
	)

	return SalaryResponse{
		EmployeeID:   employeeID,
		EmployeeName: empl.Name,
		EmployeeCode: empl.EmployeeCode,
		Breakdown:    breakdown,
		UpdatedAt:    rec.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func (s *service) Get(
	ctx context.Context,
	principal accesspolicy.Principal,
	employeeID string,
) (SalaryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidEmployeeID
	}

	// Ownership is decided from the path parameter alone, before any read,
	// so a denied caller learns nothing about whether the employee exists.
	allowed, err := s.policy.Can(principal, accesspolicy.ActionViewSalary, employeeID)
	if err != nil {
		return SalaryResponse{}, err
	}
	if !allowed {
		return SalaryResponse{}, apperror.ErrForbidden
	}

	if _, err := s.findEmployee(ctx, employeeID); err != nil {
		return SalaryResponse{}, err
	}

	row, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	return SalaryResponse{
		EmployeeID:   row.EmployeeID.String(),
		EmployeeName: row.EmployeeName,
		EmployeeCode: row.EmployeeCode,
		Breakdown: payroll.Breakdown{
			Basic:           row.Basic,
			HRA:             row.HRA,
			Conveyance:      row.Conveyance,
			TotalEarnings:   row.TotalEarnings,
			EmployeePF:      row.EmployeePF,
			EmployerPFTotal: row.EmployerPFTotal,
			EmployerPension: row.EmployerPension,
			EmployerPF:      row.EmployerPF,
			ESICApplicable:  row.ESICApplicable,
			EmployeeESIC:    row.EmployeeESIC,
			EmployerESIC:    row.EmployerESIC,
			NetPay:          row.NetPay,
		},
		UpdatedAt: row.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func (s *service) findEmployee(ctx context.Context, id string) (*employee.Employee, error) {
	empl, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, mapRepositoryError(err)
	}
	return empl, nil
}

func recordFromBreakdown(employeeID uuid.UUID, b payroll.Breakdown) *SalaryRecord {
	return &SalaryRecord{
		ID:              uuid.New(),
		EmployeeID:      employeeID,
		Basic:           b.Basic,
		HRA:             b.HRA,
		Conveyance:      b.Conveyance,
		TotalEarnings:   b.TotalEarnings,
		EmployeePF:      b.EmployeePF,
		EmployerPFTotal: b.EmployerPFTotal,
		EmployerPension: b.EmployerPension,
		EmployerPF:      b.EmployerPF,
		ESICApplicable:  b.ESICApplicable,
		EmployeeESIC:    b.EmployeeESIC,
		EmployerESIC:    b.EmployerESIC,
		NetPay:          b.NetPay,
	}
}
