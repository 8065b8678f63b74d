package balanceerrors

import (
	"net/http"

	"timecraft/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrUnknownCategory = apperror.New(
		apperror.CodeInvalidInput,
		"unknown time off category, expected VACATION, SICK, PERSONAL or OTHER",
		http.StatusBadRequest,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"time off balance not found",
		http.StatusNotFound,
	)
	ErrBalanceExists = apperror.New(
		apperror.CodeConflict,
		"employee already has a time off balance",
		http.StatusConflict,
	)
	ErrZeroQuantity = apperror.New(
		apperror.CodeInvalidInput,
		"quantity must not be zero",
		http.StatusBadRequest,
	)
)
