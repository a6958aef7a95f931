package tenant

import (
	"lucia-hrms/internal/authz"

	"gorm.io/gorm"
)

func BranchScope(branchID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("branch_id = ?", branchID)
	}
}

func EmployeeScope(employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", employeeID)
	}
}

// Visible limits rows to what the caller may read: organization roles see
// everything, branch roles their branch, everyone else their own rows.
func Visible(auth authz.Context) func(db *gorm.DB) *gorm.DB {
	switch {
	case auth.HasOrgAuthority():
		return func(db *gorm.DB) *gorm.DB { return db }
	case auth.Role.IsBranchScoped() && auth.ScopedBranchID != "":
		return BranchScope(auth.ScopedBranchID)
	default:
		return EmployeeScope(auth.CallerID)
	}
}
