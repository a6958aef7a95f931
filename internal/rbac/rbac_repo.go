package rbac

import (
	"lucia-hrms/internal/authz"
	"lucia-hrms/internal/domain"
)

const (
	GroupEmployee       = "employee"
	GroupBranchApprover = "branch_approver"
	GroupOrgAdmin       = "org_admin"
)

// Repository supplies the grouping and permission rows the enforcer is
// loaded from.
//
//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRoleGroups() ([]RoleGroupRow, error)
	GetGroupPermissions() ([]GroupPermissionRow, error)
}

// RoleGroupRow assigns Member (a role or a group) to Group.
type RoleGroupRow struct {
	Member string
	Group  string
}

type GroupPermissionRow struct {
	Group    string
	Resource string
	Action   string
}

type staticRepository struct {
	groups      []RoleGroupRow
	permissions []GroupPermissionRow
}

// NewStaticRepository returns the built-in leave policy. Roles are issued by
// the identity provider, so there is nothing to read from the database.
func NewStaticRepository() Repository {
	return &staticRepository{
		groups: []RoleGroupRow{
			{Member: string(authz.RoleEmployee), Group: GroupEmployee},
			{Member: string(authz.RoleBranchManager), Group: GroupBranchApprover},
			{Member: string(authz.RoleBranchAdmin), Group: GroupBranchApprover},
			{Member: string(authz.RoleAdmin), Group: GroupOrgAdmin},
			{Member: string(authz.RoleSuperAdmin), Group: GroupOrgAdmin},
			{Member: GroupBranchApprover, Group: GroupEmployee},
			{Member: GroupOrgAdmin, Group: GroupEmployee},
		},
		permissions: []GroupPermissionRow{
			{Group: GroupEmployee, Resource: domain.ResourceLeaveRequest, Action: domain.ActionCreate},
			{Group: GroupEmployee, Resource: domain.ResourceLeaveRequest, Action: domain.ActionRead},
			{Group: GroupEmployee, Resource: domain.ResourceLeaveBalance, Action: domain.ActionRead},
			{Group: GroupBranchApprover, Resource: domain.ResourceLeaveApproval, Action: domain.ActionPrimary},
			{Group: GroupOrgAdmin, Resource: domain.ResourceLeaveApproval, Action: domain.ActionFinal},
			{Group: GroupOrgAdmin, Resource: domain.ResourceLeaveBalance, Action: domain.ActionAdjust},
			{Group: GroupOrgAdmin, Resource: domain.ResourceLeaveBalance, Action: domain.ActionRecompute},
		},
	}
}

func (r *staticRepository) GetRoleGroups() ([]RoleGroupRow, error) {
	return r.groups, nil
}

func (r *staticRepository) GetGroupPermissions() ([]GroupPermissionRow, error) {
	return r.permissions, nil
}
