package timeoff

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timecraft/internal/rbac"
	"timecraft/internal/shared/apperror"
	"timecraft/internal/shared/contextutil"
	"timecraft/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("timeoff.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeoff.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("timeoff request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Apply(c *gin.Context) {
	userID, ok := contextutil.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required", nil)
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http apply validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), userID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if !resp.Submitted {
		status = http.StatusOK
	}
	response.Success(c, status, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	var req DecideRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("http approve validation failed", zap.Error(err))
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}
	}

	resp, err := h.service.Approve(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	var req DecideRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("http reject validation failed", zap.Error(err))
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}
	}

	resp, err := h.service.Deny(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetAll lists every request for HR and Admin; plain users see only their
// own.
func (h *Handler) GetAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	role, _ := contextutil.Role(c)
	var (
		resp  []TimeoffResponse
		total int64
		err   error
	)
	if rbac.IsElevated(role) {
		resp, total, err = h.service.GetAll(c.Request.Context(), page, pageSize)
	} else {
		employeeID, ok := contextutil.EmployeeID(c)
		if !ok {
			response.Success(c, http.StatusOK, []TimeoffResponse{}, nil)
			return
		}
		resp, total, err = h.service.GetAllByEmployee(c.Request.Context(), employeeID, page, pageSize)
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	role, _ := contextutil.Role(c)
	if !rbac.IsElevated(role) {
		own, ok := contextutil.EmployeeID(c)
		if !ok || own != resp.EmployeeID {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "You may only view your own requests", nil)
			return
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}
