package timeofferrors

import (
	"net/http"

	"timecraft/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidState,
		"not enough remaining days for the requested period",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"time off request not found",
		http.StatusNotFound,
	)
	ErrAlreadyApproved = apperror.New(
		apperror.CodeInvalidState,
		"time off request is already approved",
		http.StatusBadRequest,
	)
	ErrAlreadyDenied = apperror.New(
		apperror.CodeInvalidState,
		"time off request is already denied",
		http.StatusBadRequest,
	)
)
