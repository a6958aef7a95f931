package directory

import (
	"errors"

	directoryerrors "lucia-hrms/internal/directory/errors"
	"lucia-hrms/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return directoryerrors.ErrEmployeeNotFound
	}

	return apperror.Storage(err)
}
