package accesspolicy

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Action is a guarded operation on employee or salary data.
type Action string

const (
	ActionCreateEmployee Action = "employee:create"
	ActionListEmployees  Action = "employee:list"
	ActionDeleteEmployee Action = "employee:delete"
	ActionViewSalary     Action = "salary:view"
	ActionUpsertSalary   Action = "salary:upsert"
)

// Ownership-resolved variants of ActionViewSalary. Callers never pass these;
// Can derives them from the owner argument.
const (
	actionViewOwnSalary Action = "salary:view_own"
	actionViewAnySalary Action = "salary:view_any"
)

const modelText = `
[request_definition]
r = sub, act

[policy_definition]
p = sub, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.act == p.act
`

// policyRows is the complete role/action decision table. Listing stays
// organization-wide for the user role; salary reads are the only
// ownership-scoped action.
var policyRows = [][]string{
	{string(RoleUser), string(ActionListEmployees)},
	{string(RoleUser), string(actionViewOwnSalary)},

	{string(RoleAdmin), string(ActionCreateEmployee)},
	{string(RoleAdmin), string(ActionListEmployees)},
	{string(RoleAdmin), string(actionViewOwnSalary)},
	{string(RoleAdmin), string(actionViewAnySalary)},
	{string(RoleAdmin), string(ActionUpsertSalary)},

	{string(RoleSuperadmin), string(ActionCreateEmployee)},
	{string(RoleSuperadmin), string(ActionListEmployees)},
	{string(RoleSuperadmin), string(ActionDeleteEmployee)},
	{string(RoleSuperadmin), string(actionViewOwnSalary)},
	{string(RoleSuperadmin), string(actionViewAnySalary)},
	{string(RoleSuperadmin), string(ActionUpsertSalary)},
}

// Policy answers allow/deny for a principal, an action and, for
// ownership-scoped actions, the resource owner. It holds only an in-memory
// enforcer: no I/O, deterministic for identical inputs.
type Policy struct {
	enforcer *casbin.Enforcer
}

func NewPolicy() (*Policy, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, row := range policyRows {
		if _, err := enforcer.AddPolicy(row[0], row[1]); err != nil {
			return nil, err
		}
	}

	return &Policy{enforcer: enforcer}, nil
}

// Can decides whether the principal may perform action. ownerEmployeeID is
// consulted only for ActionViewSalary, where it resolves the request to the
// own- or any-salary variant before enforcement.
func (p *Policy) Can(principal Principal, action Action, ownerEmployeeID string) (bool, error) {
	if action == ActionViewSalary {
		if principal.Owns(ownerEmployeeID) {
			action = actionViewOwnSalary
		} else {
			action = actionViewAnySalary
		}
	}

	return p.enforcer.Enforce(string(principal.Role), string(action))
}
