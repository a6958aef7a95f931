package approvalerrors

import (
	"net/http"

	"lucia-hrms/internal/shared/apperror"
)

var (
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be approve or reject",
		http.StatusBadRequest,
	)
	ErrCommentsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"comments are required when rejecting",
		http.StatusBadRequest,
	)
	ErrInvalidState = apperror.New(
		apperror.CodeInvalidState,
		"leave request is not awaiting this decision",
		http.StatusBadRequest,
	)
	ErrBranchRequired = apperror.New(
		apperror.CodeForbidden,
		"a branch-scoped role is required",
		http.StatusForbidden,
	)
)
