package positionerrors

import (
	"net/http"

	"timecraft/internal/shared/apperror"
)

var (
	ErrPositionNotFound = apperror.New(
		apperror.CodeNotFound,
		"position not found",
		http.StatusNotFound,
	)
)
