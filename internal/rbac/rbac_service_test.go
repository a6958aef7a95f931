package rbac

import (
	"testing"

	"lucia-hrms/internal/domain"
	"lucia-hrms/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) Service {
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	svc := NewService(NewStaticRepository(), enforcer)
	assert.NoError(t, svc.LoadPolicy())
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		role     string
		resource string
		action   string
		want     bool
	}{
		{"EMPLOYEE", domain.ResourceLeaveRequest, domain.ActionCreate, true},
		{"EMPLOYEE", domain.ResourceLeaveBalance, domain.ActionRead, true},
		{"EMPLOYEE", domain.ResourceLeaveApproval, domain.ActionPrimary, false},
		{"EMPLOYEE", domain.ResourceLeaveBalance, domain.ActionAdjust, false},
		{"BRANCH_MANAGER", domain.ResourceLeaveApproval, domain.ActionPrimary, true},
		{"BRANCH_ADMIN", domain.ResourceLeaveRequest, domain.ActionCreate, true},
		{"BRANCH_ADMIN", domain.ResourceLeaveApproval, domain.ActionFinal, false},
		{"ADMIN", domain.ResourceLeaveApproval, domain.ActionFinal, true},
		{"SUPER_ADMIN", domain.ResourceLeaveBalance, domain.ActionRecompute, true},
		{"SUPER_ADMIN", domain.ResourceLeaveApproval, domain.ActionPrimary, false},
		{"", domain.ResourceLeaveRequest, domain.ActionRead, false},
		{"OWNER", domain.ResourceLeaveRequest, domain.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.resource+"/"+tt.action, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{Role: tt.role, Resource: tt.resource, Action: tt.action})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestRBACService_PermissionsForRole(t *testing.T) {
	svc := newTestService(t)

	perms, err := svc.PermissionsForRole("BRANCH_MANAGER")
	assert.NoError(t, err)
	assert.Contains(t, perms, domain.PermissionResponse{Resource: domain.ResourceLeaveApproval, Action: domain.ActionPrimary})
	assert.Contains(t, perms, domain.PermissionResponse{Resource: domain.ResourceLeaveRequest, Action: domain.ActionCreate})
	assert.NotContains(t, perms, domain.PermissionResponse{Resource: domain.ResourceLeaveApproval, Action: domain.ActionFinal})
}
