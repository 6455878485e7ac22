package notificationerrors

import (
	"net/http"

	"go-attendly/internal/shared/apperror"
)

var (
	ErrInvalidRecipientID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid recipient id",
		http.StatusBadRequest,
	)
	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid notification id",
		http.StatusBadRequest,
	)
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrNotRecipient = apperror.New(
		apperror.CodeForbidden,
		"only the recipient can modify this notification",
		http.StatusForbidden,
	)
)
