package leave

import (
	"errors"

	leaveerrors "lucia-hrms/internal/leave/errors"
	"lucia-hrms/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgExclusionViolation = "23P01"

	constraintActiveRange = "ex_leave_requests_employee_active_range"
)

// MapRepositoryError translates persistence failures into application
// errors. The exclusion constraint backs the overlap check, so its violation
// is an overlap and not a storage failure.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		if pgErr.ConstraintName == "" || pgErr.ConstraintName == constraintActiveRange {
			return leaveerrors.ErrOverlappingRequest
		}
	}

	return apperror.Storage(err)
}
