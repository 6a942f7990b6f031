package payroll

import (
	"math"

	"github.com/shopspring/decimal"

	payrollerrors "github.com/Shivshady23/employee-payroll-system/internal/payroll/errors"
)

const (
	// MaxComponent caps each compensation input and their sum.
	MaxComponent = 1_000_000

	// ESICWageCeiling is the monthly gross above which state insurance no
	// longer applies.
	ESICWageCeiling = 21_000
)

var (
	ratePF       = decimal.RequireFromString("0.12")
	ratePension  = decimal.RequireFromString("0.8333")
	rateEmpESIC  = decimal.RequireFromString("0.0075")
	rateEmprESIC = decimal.RequireFromString("0.0325")

	esicCeiling = decimal.NewFromInt(ESICWageCeiling)
)

// Breakdown is the full earnings and statutory-deduction statement for one
// salary submission. Every derived amount is recomputed from the three
// inputs; none of them is independently settable.
type Breakdown struct {
	Basic      float64 `json:"basic"`
	HRA        float64 `json:"hra"`
	Conveyance float64 `json:"conveyance"`

	TotalEarnings float64 `json:"total_earnings"`

	EmployeePF      int64 `json:"employee_pf"`
	EmployerPFTotal int64 `json:"employer_pf_total"`
	EmployerPension int64 `json:"employer_pension"`
	EmployerPF      int64 `json:"employer_pf"`

	ESICApplicable bool  `json:"esic_applicable"`
	EmployeeESIC   int64 `json:"employee_esic"`
	EmployerESIC   int64 `json:"employer_esic"`

	NetPay float64 `json:"net_pay"`
}

// Compute derives the statutory breakdown from the three compensation
// inputs. Amounts are rounded half-up to whole currency units at every
// intermediate step, so the rounded figures are frozen, not just the final
// one. The employer PF share is the remainder of the rounded employer total
// minus the rounded pension share; the two therefore always sum back to the
// total with no drift.
func Compute(basic, hra, conveyance float64) (Breakdown, error) {
	if err := validateComponents(basic, hra, conveyance); err != nil {
		return Breakdown{}, err
	}

	b := decimal.NewFromFloat(basic)
	h := decimal.NewFromFloat(hra)
	c := decimal.NewFromFloat(conveyance)

	totalEarnings := b.Add(h).Add(c)
	if totalEarnings.Cmp(decimal.NewFromInt(MaxComponent)) > 0 {
		return Breakdown{}, payrollerrors.ErrTotalTooLarge
	}

	employeePF := roundWhole(totalEarnings.Mul(ratePF))

	// Computed independently from employeePF: numerically equal, but they
	// represent different legal obligations.
	employerPFTotal := roundWhole(totalEarnings.Mul(ratePF))
	employerPension := roundWhole(decimal.NewFromInt(employerPFTotal).Mul(ratePension))
	employerPF := employerPFTotal - employerPension

	esicApplicable := totalEarnings.Cmp(esicCeiling) <= 0
	var employeeESIC, employerESIC int64
	if esicApplicable {
		employeeESIC = roundWhole(totalEarnings.Mul(rateEmpESIC))
		employerESIC = roundWhole(totalEarnings.Mul(rateEmprESIC))
	}

	netPay := totalEarnings.Sub(decimal.NewFromInt(employeePF + employeeESIC))

	return Breakdown{
		Basic:           basic,
		HRA:             hra,
		Conveyance:      conveyance,
		TotalEarnings:   totalEarnings.InexactFloat64(),
		EmployeePF:      employeePF,
		EmployerPFTotal: employerPFTotal,
		EmployerPension: employerPension,
		EmployerPF:      employerPF,
		ESICApplicable:  esicApplicable,
		EmployeeESIC:    employeeESIC,
		EmployerESIC:    employerESIC,
		NetPay:          netPay.InexactFloat64(),
	}, nil
}

func validateComponents(components ...float64) error {
	for _, v := range components {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return payrollerrors.ErrNonFiniteComponent
		}
		if v < 0 {
			return payrollerrors.ErrNegativeComponent
		}
		if v > MaxComponent {
			return payrollerrors.ErrComponentTooLarge
		}
	}
	return nil
}

// roundWhole rounds to the nearest whole unit, halves up.
func roundWhole(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
