package balance

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
	l := zap.L().Named("balance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("balance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// mayAccessEmployee restricts plain users to their own balance. HR and Admin
// may look at anyone.
func mayAccessEmployee(c *gin.Context, employeeID string) bool {
	role, _ := contextutil.Role(c)
	if rbac.IsElevated(role) {
		return true
	}
	own, ok := contextutil.EmployeeID(c)
	return ok && own == employeeID
}

func (h *Handler) GetBalance(c *gin.Context) {
	employeeID := c.Query("employee_id")
	category := c.Query("type")

	if !mayAccessEmployee(c, employeeID) {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "You may only view your own balance", nil)
		return
	}

	days, err := h.service.GetBalance(c.Request.Context(), employeeID, category)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"employee_id": employeeID,
		"type":        category,
		"days":        days,
	}, nil)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	employeeID := c.Param("employee_id")

	if !mayAccessEmployee(c, employeeID) {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "You may only view your own balance", nil)
		return
	}

	resp, err := h.service.GetByEmployee(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	resp, total, err := h.service.GetAll(c.Request.Context(), page, pageSize)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) Change(c *gin.Context) {
	var req ChangeBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http change balance validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ChangeBalance(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UsedDays(c *gin.Context) {
	employeeID := c.Query("employee_id")

	if !mayAccessEmployee(c, employeeID) {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "You may only view your own balance", nil)
		return
	}

	used, err := h.service.UsedDays(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, UsedDaysResponse{EmployeeID: employeeID, UsedDays: used}, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create balance validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update balance validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
