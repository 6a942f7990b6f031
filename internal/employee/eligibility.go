package employee

import (
	"time"

	employeeerrors "github.com/Shivshady23/employee-payroll-system/internal/employee/errors"
)

// MinHiringAge is the minimum age, in whole years at the date of joining.
const MinHiringAge = 18

// AgeAtJoining computes the age in completed calendar years at the joining
// date: the year difference, minus one when the joining (month, day) falls
// before the birthday within the joining year.
func AgeAtJoining(dateOfBirth, dateOfJoining time.Time) int {
	age := dateOfJoining.Year() - dateOfBirth.Year()

	if dateOfJoining.Month() < dateOfBirth.Month() ||
		(dateOfJoining.Month() == dateOfBirth.Month() && dateOfJoining.Day() < dateOfBirth.Day()) {
		age--
	}

	return age
}

// ValidateAge enforces the hiring-age rule relative to the joining date.
// This check is authoritative; any client-side age hint is advisory only.
func ValidateAge(dateOfBirth, dateOfJoining time.Time) error {
	if AgeAtJoining(dateOfBirth, dateOfJoining) < MinHiringAge {
		return employeeerrors.ErrBelowMinimumAge
	}
	return nil
}
