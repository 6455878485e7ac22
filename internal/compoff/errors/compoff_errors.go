package compofferrors

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
	ErrInvalidReviewerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid reviewer id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrWorkDateInFuture = apperror.New(
		apperror.CodeInvalidInput,
		"work_date cannot be in the future",
		http.StatusBadRequest,
	)
	ErrCompOffDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"comp_off_date cannot be in the past",
		http.StatusBadRequest,
	)
	ErrCompOffDuringLeave = apperror.New(
		apperror.CodeConflict,
		"comp_off_date falls inside an approved leave period",
		http.StatusConflict,
	)
	ErrCompOffNotFound = apperror.New(
		apperror.CodeNotFound,
		"comp-off request not found",
		http.StatusNotFound,
	)
	ErrAlreadyReviewed = apperror.New(
		apperror.CodeInvalidState,
		"comp-off request has already been reviewed",
		http.StatusBadRequest,
	)
	ErrCommentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reviewer_comment is required when rejecting",
		http.StatusBadRequest,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requester or an admin can view this request",
		http.StatusForbidden,
	)
)
