package employeesalary

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivshady23/employee-payroll-system/internal/accesspolicy"
	salaryerrors "github.com/Shivshady23/employee-payroll-system/internal/employeesalary/errors"
	"github.com/Shivshady23/employee-payroll-system/internal/payroll"
	"github.com/Shivshady23/employee-payroll-system/internal/shared/apperror"
)

type stubSalaryService struct {
	upsertResp SalaryResponse
	upsertErr  error
	getResp    SalaryResponse
	getErr     error
}

func (s *stubSalaryService) Upsert(_ context.Context, _ accesspolicy.Principal, _ string, _ UpsertSalaryRequest) (SalaryResponse, error) {
	return s.upsertResp, s.upsertErr
}

func (s *stubSalaryService) Get(_ context.Context, _ accesspolicy.Principal, _ string) (SalaryResponse, error) {
	return s.getResp, s.getErr
}

func salaryTestContext(t *testing.T, method string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1/employees/abc/salary", reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	return c, w
}

func TestSalaryHandlerUpsert(t *testing.T) {
	t.Run("returns the stored breakdown", func(t *testing.T) {
		h := NewHandler(&stubSalaryService{upsertResp: SalaryResponse{
			EmployeeCode: "1000",
			Breakdown:    payroll.Breakdown{TotalEarnings: 62000, EmployeePF: 7440},
		}})

		c, w := salaryTestContext(t, http.MethodPut, UpsertSalaryRequest{Basic: 50000, HRA: 10000, Conveyance: 2000})
		h.Upsert(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "7440")
	})

	t.Run("rejects a negative component at binding", func(t *testing.T) {
		h := NewHandler(&stubSalaryService{})

		c, w := salaryTestContext(t, http.MethodPut, UpsertSalaryRequest{Basic: -1})
		h.Upsert(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps forbidden to 403", func(t *testing.T) {
		h := NewHandler(&stubSalaryService{upsertErr: apperror.ErrForbidden})

		c, w := salaryTestContext(t, http.MethodPut, UpsertSalaryRequest{Basic: 1000})
		h.Upsert(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestSalaryHandlerGet(t *testing.T) {
	t.Run("maps a missing record to 404", func(t *testing.T) {
		h := NewHandler(&stubSalaryService{getErr: salaryerrors.ErrSalaryNotFound})

		c, w := salaryTestContext(t, http.MethodGet, nil)
		h.Get(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns the record", func(t *testing.T) {
		h := NewHandler(&stubSalaryService{getResp: SalaryResponse{
			EmployeeCode: "1000",
			Breakdown:    payroll.Breakdown{TotalEarnings: 19000, ESICApplicable: true},
		}})

		c, w := salaryTestContext(t, http.MethodGet, nil)
		h.Get(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "esic_applicable")
	})
}
