// Package authz holds the caller identity every leave operation is scoped by.
// It is resolved once per request by the auth middleware and passed down
// explicitly; services never look roles up on their own.
package authz

type Role string

const (
	RoleSuperAdmin    Role = "SUPER_ADMIN"
	RoleAdmin         Role = "ADMIN"
	RoleBranchAdmin   Role = "BRANCH_ADMIN"
	RoleBranchManager Role = "BRANCH_MANAGER"
	RoleEmployee      Role = "EMPLOYEE"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleBranchAdmin, RoleBranchManager, RoleEmployee:
		return true
	}
	return false
}

func (r Role) IsOrgWide() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

func (r Role) IsBranchScoped() bool {
	return r == RoleBranchAdmin || r == RoleBranchManager
}

type Context struct {
	CallerID       string
	Role           Role
	ScopedBranchID string
}

func (a Context) HasOrgAuthority() bool {
	return a.Role.IsOrgWide()
}

// HasBranchAuthority reports whether the caller may act as branch approver
// for branchID. Branch roles without a scoped branch match nothing.
func (a Context) HasBranchAuthority(branchID string) bool {
	return a.Role.IsBranchScoped() && a.ScopedBranchID != "" && a.ScopedBranchID == branchID
}

// CanActFor reports whether the caller may read or submit on behalf of the
// employee that belongs to branchID.
func (a Context) CanActFor(employeeID, branchID string) bool {
	if a.CallerID != "" && a.CallerID == employeeID {
		return true
	}
	return a.HasOrgAuthority() || a.HasBranchAuthority(branchID)
}
