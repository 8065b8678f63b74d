package timeoff

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"timecraft/internal/balance"
	"timecraft/internal/employee"
	"timecraft/internal/events"
	"timecraft/internal/messaging/kafka"
	timeofferrors "timecraft/internal/timeoff/errors"
	"timecraft/internal/user"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusDenied   = "DENIED"
)

//go:generate mockgen -source=timeoff_service.go -destination=mock/timeoff_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, userID string, req ApplyRequest) (ApplyResult, error)
	Approve(ctx context.Context, id string, req DecideRequest) (TimeoffResponse, error)
	Deny(ctx context.Context, id string, req DecideRequest) (TimeoffResponse, error)
	GetAll(ctx context.Context, page, pageSize int) ([]TimeoffResponse, int64, error)
	GetAllByEmployee(ctx context.Context, employeeID string, page, pageSize int) ([]TimeoffResponse, int64, error)
	GetByID(ctx context.Context, id string) (TimeoffResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	userRepo     user.Repository
	balanceRepo  balance.Repository
	publisher    kafka.Publisher
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	userRepo user.Repository,
	balanceRepo balance.Repository,
	publisher kafka.Publisher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("timeoff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeoff.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		balanceRepo:  balanceRepo,
		publisher:    publisher,
		logger:       l,
	}
}

// Apply submits a time off request for the calling user. A caller without an
// employee record gets Submitted=false, not an error. On success one PENDING
// row exists and both the confirmation and the HR notification are published;
// a publish failure is reported to the caller even though the row committed.
func (s *service) Apply(ctx context.Context, userID string, req ApplyRequest) (ApplyResult, error) {
	s.logger.Debug("apply requested",
		zap.String("user_id", userID),
		zap.String("type", req.Type),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	emp, err := s.employeeRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("apply without employee record", zap.String("user_id", userID))
			return ApplyResult{Submitted: false}, nil
		}
		return ApplyResult{}, err
	}

	category, err := balance.ParseCategory(req.Type)
	if err != nil {
		s.logger.Warn("apply unknown category", zap.String("type", req.Type))
		return ApplyResult{}, err
	}

	startDate, endDate, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return ApplyResult{}, err
	}
	days := int(endDate.Sub(startDate).Hours() / 24)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply begin tx failed", zap.Error(err))
		return ApplyResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qbal := s.balanceRepo.WithTx(tx)

	bal, err := qbal.FindByEmployeeID(ctx, emp.ID.String())
	if err != nil {
		s.logger.Error("apply balance lookup failed", zap.Error(err))
		return ApplyResult{}, err
	}
	available, err := bal.Days(category)
	if err != nil {
		return ApplyResult{}, err
	}
	if available < days {
		s.logger.Warn("apply insufficient balance",
			zap.String("employee_id", emp.ID.String()),
			zap.String("type", category),
			zap.Int("available", available),
			zap.Int("requested", days),
		)
		return ApplyResult{}, timeofferrors.ErrInsufficientBalance
	}

	r := &TimeoffRequest{
		ID:         uuid.New(),
		EmployeeID: emp.ID,
		Type:       category,
		StartDate:  startDate,
		EndDate:    endDate,
		Comment:    req.Comment,
		Status:     StatusPending,
	}
	if err := qtx.Create(ctx, r); err != nil {
		s.logger.Error("apply persist failed", zap.Error(err))
		return ApplyResult{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply commit failed", zap.Error(err))
		return ApplyResult{}, err
	}

	u, err := s.userRepo.FindByID(ctx, emp.UserID.String())
	if err != nil {
		s.logger.Error("apply user lookup failed", zap.String("user_id", emp.UserID.String()), zap.Error(err))
		return ApplyResult{}, err
	}

	if err := s.publisher.Publish(ctx, events.TimeoffRequestUserTopic, r.ID.String(), events.TimeoffRequestUserEvent{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Type:      r.Type,
		StartDate: r.StartDate.Format("2006-01-02"),
		EndDate:   r.EndDate.Format("2006-01-02"),
	}); err != nil {
		return ApplyResult{}, err
	}

	if err := s.publisher.Publish(ctx, events.TimeoffHRTopic, r.ID.String(), events.TimeoffHREvent{
		UserFirstName: u.FirstName,
		UserLastName:  u.LastName,
		Type:          r.Type,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		Comment:       r.Comment,
	}); err != nil {
		return ApplyResult{}, err
	}

	s.logger.Info("apply success",
		zap.String("request_id", r.ID.String()),
		zap.String("employee_id", emp.ID.String()),
		zap.Int("days", days),
	)
	return ApplyResult{Submitted: true, RequestID: r.ID.String()}, nil
}

func (s *service) Approve(ctx context.Context, id string, req DecideRequest) (TimeoffResponse, error) {
	return s.decide(ctx, id, StatusApproved, req.Comment)
}

func (s *service) Deny(ctx context.Context, id string, req DecideRequest) (TimeoffResponse, error) {
	return s.decide(ctx, id, StatusDenied, req.Comment)
}

// decide flips the request status and, on approval, burns the requested days
// from the employee's balance inside the same transaction. Approving a
// previously denied request is allowed; repeating the same decision is not.
func (s *service) decide(ctx context.Context, id, targetStatus, comment string) (TimeoffResponse, error) {
	s.logger.Debug("decide requested",
		zap.String("request_id", id),
		zap.String("target_status", targetStatus),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide begin tx failed", zap.Error(err))
		return TimeoffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qbal := s.balanceRepo.WithTx(tx)

	r, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeoffResponse{}, timeofferrors.ErrRequestNotFound
		}
		return TimeoffResponse{}, err
	}

	if r.Status == targetStatus {
		s.logger.Warn("decide repeated",
			zap.String("request_id", id),
			zap.String("status", r.Status),
		)
		if targetStatus == StatusApproved {
			return TimeoffResponse{}, timeofferrors.ErrAlreadyApproved
		}
		return TimeoffResponse{}, timeofferrors.ErrAlreadyDenied
	}

	fromStatus := r.Status

	if targetStatus == StatusApproved {
		bal, err := qbal.FindByEmployeeID(ctx, r.EmployeeID.String())
		if err != nil {
			s.logger.Error("decide balance lookup failed", zap.Error(err))
			return TimeoffResponse{}, err
		}
		if err := bal.AddDays(r.Type, -r.Days()); err != nil {
			return TimeoffResponse{}, err
		}
		if err := qbal.Update(ctx, bal); err != nil {
			s.logger.Error("decide balance persist failed", zap.Error(err))
			return TimeoffResponse{}, err
		}
	}

	r.Status = targetStatus
	if comment != "" {
		r.Comment = comment
	}
	if err := qtx.Update(ctx, r); err != nil {
		s.logger.Error("decide persist failed", zap.String("request_id", id), zap.Error(err))
		return TimeoffResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide commit failed", zap.String("request_id", id), zap.Error(err))
		return TimeoffResponse{}, err
	}

	emp, err := s.employeeRepo.FindByID(ctx, r.EmployeeID.String())
	if err != nil {
		s.logger.Error("decide employee lookup failed", zap.Error(err))
		return TimeoffResponse{}, err
	}
	u, err := s.userRepo.FindByID(ctx, emp.UserID.String())
	if err != nil {
		s.logger.Error("decide user lookup failed", zap.Error(err))
		return TimeoffResponse{}, err
	}

	if err := s.publisher.Publish(ctx, events.TimeoffRequestStatusTopic, r.ID.String(), events.TimeoffStatusEvent{
		Email:         u.Email,
		UserFirstName: u.FirstName,
		UserLastName:  u.LastName,
		Type:          r.Type,
		Comment:       r.Comment,
		FromStatus:    fromStatus,
		ToStatus:      targetStatus,
	}); err != nil {
		return TimeoffResponse{}, err
	}

	s.logger.Info("decide success",
		zap.String("request_id", id),
		zap.String("from_status", fromStatus),
		zap.String("to_status", targetStatus),
	)
	return mapToResponse(*r), nil
}

func (s *service) GetAll(ctx context.Context, page, pageSize int) ([]TimeoffResponse, int64, error) {
	requests, total, err := s.repo.FindAll(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(requests), total, nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID string, page, pageSize int) ([]TimeoffResponse, int64, error) {
	requests, total, err := s.repo.FindAllByEmployee(ctx, employeeID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(requests), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TimeoffResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeoffResponse{}, timeofferrors.ErrRequestNotFound
		}
		return TimeoffResponse{}, err
	}
	return mapToResponse(*r), nil
}

func parseDates(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, timeofferrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, timeofferrors.ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, timeofferrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func mapToResponse(r TimeoffRequest) TimeoffResponse {
	return TimeoffResponse{
		ID:         r.ID.String(),
		EmployeeID: r.EmployeeID.String(),
		Type:       r.Type,
		StartDate:  r.StartDate.Format("2006-01-02"),
		EndDate:    r.EndDate.Format("2006-01-02"),
		Days:       r.Days(),
		Comment:    r.Comment,
		Status:     r.Status,
	}
}

func mapToListResponse(requests []TimeoffRequest) []TimeoffResponse {
	resp := make([]TimeoffResponse, len(requests))
	for i, r := range requests {
		resp[i] = mapToResponse(r)
	}
	return resp
}
