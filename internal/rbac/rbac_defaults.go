package rbac

import "strings"

// systemRolePrefix keeps token roles apart from company-defined role ids.
const systemRolePrefix = "system:"

type permission struct {
	Resource string
	Action   string
}

var (
	employeePermissions = []permission{
		{"leave", "create"},
		{"leave", "read_own"},
		{"leave_policy", "read"},
	}
	approverPermissions = append([]permission{
		{"leave", "read"},
		{"leave", "approve"},
		{"leave_balance", "read"},
		{"timeline", "read"},
	}, employeePermissions...)
	adminPermissions = append([]permission{
		{"leave_policy", "create"},
		{"leave_policy", "update"},
	}, approverPermissions...)
)

// systemRolePermissions grants what a token role implies before any
// company-specific roles are consulted.
var systemRolePermissions = map[string][]permission{
	"OWNER":    adminPermissions,
	"ADMIN":    adminPermissions,
	"HR":       adminPermissions,
	"MANAGER":  approverPermissions,
	"EMPLOYEE": employeePermissions,
}

func systemRoleID(role string) (string, bool) {
	role = strings.ToUpper(strings.TrimSpace(role))
	if _, ok := systemRolePermissions[role]; !ok {
		return "", false
	}
	return systemRolePrefix + role, true
}
