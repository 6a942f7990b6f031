package accesspolicy

// Role is the fixed role set carried by the authentication token.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Principal is the already-authenticated caller: a role plus, for the user
// role, the linked employee identifier. It is built by the auth middleware
// and read-only everywhere below it.
type Principal struct {
	UserID     string
	Role       Role
	EmployeeID string // empty when no employee record is linked
}

// Owns reports whether the principal is linked to the given employee.
func (p Principal) Owns(employeeID string) bool {
	return p.EmployeeID != "" && p.EmployeeID == employeeID
}
