package shared

// Role identifies the functional role of the caller of a gated operation.
// This is a permission-check primitive only: the engine performs no
// authentication and no general authorization enforcement.
type Role string

const (
	RoleBudgetOfficer      Role = "BUDGET_OFFICER"
	RoleResourceManager    Role = "RESOURCE_MANAGER"
	RoleContractingOfficer Role = "CONTRACTING_OFFICER"
	RoleProgramManager     Role = "PROGRAM_MANAGER"
	RoleAuditor            Role = "AUDITOR"
)

// IsValid checks if the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleBudgetOfficer, RoleResourceManager, RoleContractingOfficer,
		RoleProgramManager, RoleAuditor:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// RoleAllowed reports whether role appears in the allow-list
func RoleAllowed(role Role, allowed []Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
