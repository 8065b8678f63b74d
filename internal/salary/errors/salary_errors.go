package salaryerrors

import (
	"net/http"

	"timecraft/internal/shared/apperror"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary not found",
		http.StatusNotFound,
	)
	ErrInvalidPositionID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid position id",
		http.StatusBadRequest,
	)
	ErrNetExceedsGross = apperror.New(
		apperror.CodeInvalidInput,
		"net_amount must not exceed gross_amount",
		http.StatusBadRequest,
	)
)
