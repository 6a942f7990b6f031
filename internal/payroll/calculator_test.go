package payroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shivshady23/employee-payroll-system/internal/payroll"
)

func TestCompute_AboveESICCeiling(t *testing.T) {
	got, err := payroll.Compute(50000, 10000, 2000)

	assert.NoError(t, err)
	assert.Equal(t, float64(62000), got.TotalEarnings)
	assert.False(t, got.ESICApplicable)
	assert.Equal(t, int64(7440), got.EmployeePF)
	assert.Equal(t, int64(7440), got.EmployerPFTotal)
	assert.Equal(t, int64(6200), got.EmployerPension)
	assert.Equal(t, int64(1240), got.EmployerPF)
	assert.Equal(t, int64(0), got.EmployeeESIC)
	assert.Equal(t, int64(0), got.EmployerESIC)
	assert.Equal(t, float64(54560), got.NetPay)
}

func TestCompute_WithinESICCeiling(t *testing.T) {
	got, err := payroll.Compute(15000, 3000, 1000)

	assert.NoError(t, err)
	assert.Equal(t, float64(19000), got.TotalEarnings)
	assert.True(t, got.ESICApplicable)
	assert.Equal(t, int64(2280), got.EmployeePF)
	assert.Equal(t, int64(2280), got.EmployerPFTotal)
	assert.Equal(t, int64(1900), got.EmployerPension)
	assert.Equal(t, int64(380), got.EmployerPF)
	assert.Equal(t, int64(143), got.EmployeeESIC)
	assert.Equal(t, int64(618), got.EmployerESIC)
	assert.Equal(t, float64(16577), got.NetPay)
}

func TestCompute_ESICCeilingBoundary(t *testing.T) {
	atCeiling, err := payroll.Compute(21000, 0, 0)
	assert.NoError(t, err)
	assert.True(t, atCeiling.ESICApplicable)
	assert.Equal(t, int64(158), atCeiling.EmployeeESIC)
	assert.Equal(t, int64(683), atCeiling.EmployerESIC)

	aboveCeiling, err := payroll.Compute(21001, 0, 0)
	assert.NoError(t, err)
	assert.False(t, aboveCeiling.ESICApplicable)
	assert.Equal(t, int64(0), aboveCeiling.EmployeeESIC)
	assert.Equal(t, int64(0), aboveCeiling.EmployerESIC)
}

func TestCompute_Deterministic(t *testing.T) {
	first, err := payroll.Compute(12345.67, 890.12, 34.56)
	assert.NoError(t, err)

	second, err := payroll.Compute(12345.67, 890.12, 34.56)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_EmployerSharesNeverDrift(t *testing.T) {
	// EmployerPF is a remainder, so the two employer-side components must
	// reassemble into the rounded employer total for every input.
	for basic := float64(0); basic <= 30000; basic += 137.5 {
		got, err := payroll.Compute(basic, basic/3, basic/10)
		assert.NoError(t, err)
		assert.Equal(t, got.EmployerPFTotal, got.EmployerPF+got.EmployerPension,
			"drift at basic=%v", basic)
		assert.Equal(t, got.EmployeePF, got.EmployerPFTotal)
		assert.GreaterOrEqual(t, got.NetPay, float64(0), "negative net pay at basic=%v", basic)
	}
}

func TestCompute_ZeroInputs(t *testing.T) {
	got, err := payroll.Compute(0, 0, 0)

	assert.NoError(t, err)
	assert.Equal(t, float64(0), got.TotalEarnings)
	assert.True(t, got.ESICApplicable)
	assert.Equal(t, int64(0), got.EmployeePF)
	assert.Equal(t, float64(0), got.NetPay)
}

func TestCompute_RejectsInvalidInputs(t *testing.T) {
	cases := []struct {
		name                   string
		basic, hra, conveyance float64
	}{
		{"negative basic", -1, 0, 0},
		{"negative hra", 0, -0.01, 0},
		{"negative conveyance", 0, 0, -100},
		{"basic above cap", 1000001, 0, 0},
		{"sum above cap", 600000, 600000, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := payroll.Compute(tc.basic, tc.hra, tc.conveyance)
			assert.Error(t, err)
		})
	}
}
