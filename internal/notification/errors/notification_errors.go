package notificationerrors

import (
	"net/http"

	"go-hris-leave/internal/shared/apperror"
)

var (
	ErrInvalidRecipientID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid recipient id",
		http.StatusBadRequest,
	)
	ErrTitleRequired = apperror.New(
		apperror.CodeInvalidInput,
		"notification title is required",
		http.StatusBadRequest,
	)
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
)
