package directory

import (
	"context"

	"lucia-hrms/internal/authz"
	"lucia-hrms/internal/shared/apperror"
)

// Authorize resolves employeeID and checks that the caller may act for that
// employee: themselves, a branch role of the employee's branch, or an
// organization role.
func Authorize(ctx context.Context, dir Service, auth authz.Context, employeeID string) (EmployeeRef, error) {
	ref, err := dir.Lookup(ctx, employeeID)
	if err != nil {
		return EmployeeRef{}, err
	}
	if !auth.CanActFor(ref.ID, ref.BranchID) {
		return EmployeeRef{}, apperror.ErrForbidden
	}
	return ref, nil
}
