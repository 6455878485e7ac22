package attendanceerrors

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
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"already checked in for today",
		http.StatusBadRequest,
	)
	ErrNoCheckIn = apperror.New(
		apperror.CodeInvalidState,
		"no check-in record found for today",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeInvalidState,
		"already checked out for today",
		http.StatusBadRequest,
	)
	ErrBreakAlreadyUsed = apperror.New(
		apperror.CodeInvalidState,
		"break already used today",
		http.StatusBadRequest,
	)
	ErrAlreadyOnBreak = apperror.New(
		apperror.CodeInvalidState,
		"a break is already in progress",
		http.StatusBadRequest,
	)
	ErrNotOnBreak = apperror.New(
		apperror.CodeInvalidState,
		"no break in progress",
		http.StatusBadRequest,
	)
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
)
