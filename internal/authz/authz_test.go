package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext_HasBranchAuthority(t *testing.T) {
	tests := []struct {
		name   string
		auth   Context
		branch string
		want   bool
	}{
		{"manager of same branch", Context{Role: RoleBranchManager, ScopedBranchID: "branch-a"}, "branch-a", true},
		{"admin of same branch", Context{Role: RoleBranchAdmin, ScopedBranchID: "branch-a"}, "branch-a", true},
		{"manager of other branch", Context{Role: RoleBranchManager, ScopedBranchID: "branch-a"}, "branch-b", false},
		{"manager without branch", Context{Role: RoleBranchManager}, "", false},
		{"org admin is not branch approver", Context{Role: RoleSuperAdmin}, "branch-a", false},
		{"employee", Context{Role: RoleEmployee, ScopedBranchID: "branch-a"}, "branch-a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.auth.HasBranchAuthority(tt.branch))
		})
	}
}

func TestContext_CanActFor(t *testing.T) {
	self := Context{CallerID: "emp-1", Role: RoleEmployee, ScopedBranchID: "branch-a"}
	assert.True(t, self.CanActFor("emp-1", "branch-a"))
	assert.False(t, self.CanActFor("emp-2", "branch-a"))

	manager := Context{CallerID: "mgr-1", Role: RoleBranchManager, ScopedBranchID: "branch-a"}
	assert.True(t, manager.CanActFor("emp-2", "branch-a"))
	assert.False(t, manager.CanActFor("emp-3", "branch-b"))

	admin := Context{CallerID: "adm-1", Role: RoleAdmin}
	assert.True(t, admin.CanActFor("emp-3", "branch-b"))
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleBranchAdmin.Valid())
	assert.False(t, Role("OWNER").Valid())
	assert.True(t, RoleSuperAdmin.IsOrgWide())
	assert.False(t, RoleBranchManager.IsOrgWide())
}
