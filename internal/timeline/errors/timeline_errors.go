package timelineerrors

import (
	"net/http"

	"go-hris-leave/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidEntityID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid entity id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrActionRequired = apperror.New(
		apperror.CodeInvalidInput,
		"action is required",
		http.StatusBadRequest,
	)
)
