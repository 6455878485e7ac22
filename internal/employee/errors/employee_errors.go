package employeeerrors

import (
	"net/http"

	"go-attendly/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrDuplicateEmail = apperror.New(
		apperror.CodeConflict,
		"email is already registered",
		http.StatusConflict,
	)
	ErrDuplicateEmployeeNumber = apperror.New(
		apperror.CodeConflict,
		"employee number is already taken",
		http.StatusConflict,
	)
	ErrInvalidPhone = apperror.New(
		apperror.CodeInvalidInput,
		"invalid phone number",
		http.StatusBadRequest,
	)
	ErrNotProfileOwner = apperror.New(
		apperror.CodeForbidden,
		"only the profile owner or an admin can update this profile",
		http.StatusForbidden,
	)
)
