package accesspolicy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shivshady23/employee-payroll-system/internal/accesspolicy"
)

func newPolicy(t *testing.T) *accesspolicy.Policy {
	t.Helper()
	policy, err := accesspolicy.NewPolicy()
	assert.NoError(t, err)
	return policy
}

func TestPolicy_DecisionTable(t *testing.T) {
	policy := newPolicy(t)

	ownID := "emp-1"
	otherID := "emp-2"

	user := accesspolicy.Principal{Role: accesspolicy.RoleUser, EmployeeID: ownID}
	admin := accesspolicy.Principal{Role: accesspolicy.RoleAdmin}
	superadmin := accesspolicy.Principal{Role: accesspolicy.RoleSuperadmin}

	cases := []struct {
		name      string
		principal accesspolicy.Principal
		action    accesspolicy.Action
		owner     string
		want      bool
	}{
		{"user cannot create employees", user, accesspolicy.ActionCreateEmployee, "", false},
		{"admin creates employees", admin, accesspolicy.ActionCreateEmployee, "", true},
		{"superadmin creates employees", superadmin, accesspolicy.ActionCreateEmployee, "", true},

		{"user lists employees", user, accesspolicy.ActionListEmployees, "", true},
		{"admin lists employees", admin, accesspolicy.ActionListEmployees, "", true},

		{"user cannot delete", user, accesspolicy.ActionDeleteEmployee, "", false},
		{"admin cannot delete", admin, accesspolicy.ActionDeleteEmployee, "", false},
		{"superadmin deletes", superadmin, accesspolicy.ActionDeleteEmployee, "", true},

		{"user views own salary", user, accesspolicy.ActionViewSalary, ownID, true},
		{"user cannot view other salary", user, accesspolicy.ActionViewSalary, otherID, false},
		{"admin views any salary", admin, accesspolicy.ActionViewSalary, otherID, true},
		{"superadmin views any salary", superadmin, accesspolicy.ActionViewSalary, otherID, true},

		{"user cannot upsert salary", user, accesspolicy.ActionUpsertSalary, "", false},
		{"admin upserts salary", admin, accesspolicy.ActionUpsertSalary, "", true},
		{"superadmin upserts salary", superadmin, accesspolicy.ActionUpsertSalary, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := policy.Can(tc.principal, tc.action, tc.owner)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPolicy_UnknownRoleDeniedEverything(t *testing.T) {
	policy := newPolicy(t)

	nobody := accesspolicy.Principal{Role: "auditor"}
	for _, action := range []accesspolicy.Action{
		accesspolicy.ActionCreateEmployee,
		accesspolicy.ActionListEmployees,
		accesspolicy.ActionDeleteEmployee,
		accesspolicy.ActionViewSalary,
		accesspolicy.ActionUpsertSalary,
	} {
		got, err := policy.Can(nobody, action, "emp-1")
		assert.NoError(t, err)
		assert.False(t, got, "action %s", action)
	}
}

func TestPolicy_UserWithoutEmployeeLinkCannotViewSalary(t *testing.T) {
	policy := newPolicy(t)

	unlinked := accesspolicy.Principal{Role: accesspolicy.RoleUser, EmployeeID: ""}
	got, err := policy.Can(unlinked, accesspolicy.ActionViewSalary, "")
	assert.NoError(t, err)
	assert.False(t, got)
}
