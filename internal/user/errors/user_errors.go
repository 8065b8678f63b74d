package usererrors

import (
	"net/http"

	"timecraft/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid username or password",
		http.StatusUnauthorized,
	)
	ErrUserExists = apperror.New(
		apperror.CodeConflict,
		"username or email already taken",
		http.StatusConflict,
	)
	ErrInvalidBirthday = apperror.New(
		apperror.CodeInvalidInput,
		"invalid birthday, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"invalid role",
		http.StatusBadRequest,
	)
)
