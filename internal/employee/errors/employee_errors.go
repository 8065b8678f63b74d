package employeeerrors

import (
	"net/http"

	"timecraft/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidPositionID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid position id",
		http.StatusBadRequest,
	)
	ErrInvalidSalaryID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary id",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid hire date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeExists = apperror.New(
		apperror.CodeConflict,
		"user already has an employee record",
		http.StatusConflict,
	)
)
