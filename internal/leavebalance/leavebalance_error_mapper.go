package leavebalance

import (
	"errors"

	leavebalanceerrors "lucia-hrms/internal/leavebalance/errors"
	"lucia-hrms/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leavebalanceerrors.ErrBalanceNotFound
	}

	return apperror.Storage(err)
}
