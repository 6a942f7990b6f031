package employeesalary

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Shivshady23/employee-payroll-system/internal/accesspolicy"
	"github.com/Shivshady23/employee-payroll-system/internal/employee"
	employeeerrors "github.com/Shivshady23/employee-payroll-system/internal/employee/errors"
	salaryerrors "github.com/Shivshady23/employee-payroll-system/internal/employeesalary/errors"
	payrollerrors "github.com/Shivshady23/employee-payroll-system/internal/payroll/errors"
	"github.com/Shivshady23/employee-payroll-system/internal/shared/apperror"
)

// fakeSalaryRepo keeps one record per employee, exactly like the unique
// index would.
type fakeSalaryRepo struct {
	records map[uuid.UUID]*SalaryRecord
	writes  int
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{records: make(map[uuid.UUID]*SalaryRecord)}
}

func (f *fakeSalaryRepo) WithTx(_ *sql.Tx) Repository { return f }

func (f *fakeSalaryRepo) Upsert(_ context.Context, rec *SalaryRecord) error {
	f.writes++
	if existing, ok := f.records[rec.EmployeeID]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	}
	stored := *rec
	f.records[rec.EmployeeID] = &stored
	return nil
}

func (f *fakeSalaryRepo) FindByEmployeeID(_ context.Context, employeeID string) (*SalaryWithEmployee, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, err
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &SalaryWithEmployee{
		SalaryRecord: *rec,
		EmployeeName: "Asha Verma",
		EmployeeCode: "1000",
	}, nil
}

type fakeEmployeeFinder struct {
	employees map[string]*employee.Employee
	finds     int
}

func (f *fakeEmployeeFinder) WithTx(_ *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeFinder) Create(_ context.Context, _ *employee.Employee) error { return nil }

func (f *fakeEmployeeFinder) Search(_ context.Context, _ string, _, _ int) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeFinder) CountSearch(_ context.Context, _ string) (int64, error) { return 0, nil }

func (f *fakeEmployeeFinder) FindOptions(_ context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeFinder) FindByID(_ context.Context, id string) (*employee.Employee, error) {
	f.finds++
	empl, ok := f.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return empl, nil
}

func (f *fakeEmployeeFinder) Delete(_ context.Context, _ string) (int64, error) { return 0, nil }

type salaryFixture struct {
	svc        Service
	repo       *fakeSalaryRepo
	employees  *fakeEmployeeFinder
	employeeID string
}

func newSalaryFixture(t *testing.T) *salaryFixture {
	t.Helper()

	policy, err := accesspolicy.NewPolicy()
	require.NoError(t, err)

	id := uuid.New()
	employees := &fakeEmployeeFinder{employees: map[string]*employee.Employee{
		id.String(): {ID: id, Name: "Asha Verma", EmployeeCode: "1000"},
	}}

	repo := newFakeSalaryRepo()
	return &salaryFixture{
		svc:        NewService(repo, employees, policy),
		repo:       repo,
		employees:  employees,
		employeeID: id.String(),
	}
}

func admin() accesspolicy.Principal {
	return accesspolicy.Principal{UserID: uuid.NewString(), Role: accesspolicy.RoleAdmin}
}

func regularUser(employeeID string) accesspolicy.Principal {
	return accesspolicy.Principal{UserID: uuid.NewString(), Role: accesspolicy.RoleUser, EmployeeID: employeeID}
}

func TestSalaryUpsert(t *testing.T) {
	t.Run("stores the computed breakdown", func(t *testing.T) {
		f := newSalaryFixture(t)

		resp, err := f.svc.Upsert(context.Background(), admin(), f.employeeID, UpsertSalaryRequest{
			Basic: 50000, HRA: 10000, Conveyance: 2000,
		})
		require.NoError(t, err)

		assert.Equal(t, float64(62000), resp.TotalEarnings)
		assert.Equal(t, int64(7440), resp.EmployeePF)
		assert.Equal(t, int64(6200), resp.EmployerPension)
		assert.Equal(t, int64(1240), resp.EmployerPF)
		assert.False(t, resp.ESICApplicable)
		assert.Equal(t, float64(54560), resp.NetPay)
		assert.Equal(t, "Asha Verma", resp.EmployeeName)
	})

	t.Run("a second upsert replaces the record instead of adding one", func(t *testing.T) {
		f := newSalaryFixture(t)
		ctx := context.Background()

		_, err := f.svc.Upsert(ctx, admin(), f.employeeID, UpsertSalaryRequest{Basic: 50000, HRA: 10000, Conveyance: 2000})
		require.NoError(t, err)
		_, err = f.svc.Upsert(ctx, admin(), f.employeeID, UpsertSalaryRequest{Basic: 15000, HRA: 3000, Conveyance: 1000})
		require.NoError(t, err)

		assert.Equal(t, 2, f.repo.writes)
		assert.Len(t, f.repo.records, 1)

		got, err := f.svc.Get(ctx, admin(), f.employeeID)
		require.NoError(t, err)
		assert.Equal(t, float64(19000), got.TotalEarnings)
		assert.True(t, got.ESICApplicable)
		assert.Equal(t, int64(143), got.EmployeeESIC)
		assert.Equal(t, int64(618), got.EmployerESIC)
		assert.Equal(t, float64(16577), got.NetPay)
	})

	t.Run("unknown employee reads as not found", func(t *testing.T) {
		f := newSalaryFixture(t)

		_, err := f.svc.Upsert(context.Background(), admin(), uuid.NewString(), UpsertSalaryRequest{Basic: 1000})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("user role may not write salaries", func(t *testing.T) {
		f := newSalaryFixture(t)

		_, err := f.svc.Upsert(context.Background(), regularUser(f.employeeID), f.employeeID, UpsertSalaryRequest{Basic: 1000})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
		assert.Zero(t, f.repo.writes)
	})

	t.Run("rejects a component above the cap", func(t *testing.T) {
		f := newSalaryFixture(t)

		_, err := f.svc.Upsert(context.Background(), admin(), f.employeeID, UpsertSalaryRequest{Basic: 1_000_001})
		assert.ErrorIs(t, err, payrollerrors.ErrComponentTooLarge)
		assert.Zero(t, f.repo.writes)
	})

	t.Run("rejects a malformed employee id", func(t *testing.T) {
		f := newSalaryFixture(t)

		_, err := f.svc.Upsert(context.Background(), admin(), "not-a-uuid", UpsertSalaryRequest{Basic: 1000})
		assert.ErrorIs(t, err, salaryerrors.ErrInvalidEmployeeID)
	})
}

func TestSalaryGet(t *testing.T) {
	t.Run("owner may read their own salary", func(t *testing.T) {
		f := newSalaryFixture(t)
		ctx := context.Background()

		_, err := f.svc.Upsert(ctx, admin(), f.employeeID, UpsertSalaryRequest{Basic: 50000, HRA: 10000, Conveyance: 2000})
		require.NoError(t, err)

		got, err := f.svc.Get(ctx, regularUser(f.employeeID), f.employeeID)
		require.NoError(t, err)
		assert.Equal(t, f.employeeID, got.EmployeeID)
	})

	t.Run("user reading another employee's salary is forbidden, not not-found", func(t *testing.T) {
		f := newSalaryFixture(t)

		// No record exists; the denial must come before the lookup.
		_, err := f.svc.Get(context.Background(), regularUser(uuid.NewString()), f.employeeID)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
		assert.Zero(t, f.employees.finds)
	})

	t.Run("denied caller learns nothing about a nonexistent employee", func(t *testing.T) {
		f := newSalaryFixture(t)

		_, err := f.svc.Get(context.Background(), regularUser(f.employeeID), uuid.NewString())
		assert.ErrorIs(t, err, apperror.ErrForbidden)
		assert.Zero(t, f.employees.finds)
	})

	t.Run("admin reading a missing record gets not found", func(t *testing.T) {
		f := newSalaryFixture(t)

		_, err := f.svc.Get(context.Background(), admin(), f.employeeID)
		assert.ErrorIs(t, err, salaryerrors.ErrSalaryNotFound)
	})

	t.Run("unknown employee reads as not found", func(t *testing.T) {
		f := newSalaryFixture(t)

		_, err := f.svc.Get(context.Background(), admin(), uuid.NewString())
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
