package timesheeterrors

import (
	"net/http"

	"timecraft/internal/shared/apperror"
)

var (
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"timesheet entry not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_time must be after start_time",
		http.StatusBadRequest,
	)
	ErrInvalidWorkDate = apperror.New(
		apperror.CodeInvalidInput,
		"work_date must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
