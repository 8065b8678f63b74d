package timesheet

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	timesheeterrors "timecraft/internal/timesheet/errors"
)

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTimesheetRequest) (TimesheetResponse, error)
	GetAll(ctx context.Context, page, pageSize int) ([]TimesheetResponse, int64, error)
	GetAllByEmployee(ctx context.Context, employeeID string, page, pageSize int) ([]TimesheetResponse, int64, error)
	GetByID(ctx context.Context, id string) (TimesheetResponse, error)
	Update(ctx context.Context, id string, req UpdateTimesheetRequest) (TimesheetResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func validTimeRange(start, end string) bool {
	startT, err := time.Parse("15:04", start)
	if err != nil {
		return false
	}
	endT, err := time.Parse("15:04", end)
	if err != nil {
		return false
	}
	return endT.After(startT)
}

func (s *service) Create(ctx context.Context, req CreateTimesheetRequest) (TimesheetResponse, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidEmployeeID
	}
	if !validTimeRange(req.StartTime, req.EndTime) {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTimeRange
	}
	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidWorkDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create timesheet begin tx failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e := &TimesheetEntry{
		ID:          uuid.New(),
		EmployeeID:  employeeUUID,
		WorkDate:    workDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
	}
	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create timesheet persist failed", zap.Error(err))
		return TimesheetResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create timesheet commit failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	s.logger.Info("create timesheet success",
		zap.String("entry_id", e.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, page, pageSize int) ([]TimesheetResponse, int64, error) {
	entries, total, err := s.repo.FindAll(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(entries), total, nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID string, page, pageSize int) ([]TimesheetResponse, int64, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, 0, timesheeterrors.ErrInvalidEmployeeID
	}

	entries, total, err := s.repo.FindAllByEmployee(ctx, employeeID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(entries), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TimesheetResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimesheetResponse{}, timesheeterrors.ErrEntryNotFound
		}
		return TimesheetResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTimesheetRequest) (TimesheetResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update timesheet begin tx failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimesheetResponse{}, timesheeterrors.ErrEntryNotFound
		}
		return TimesheetResponse{}, err
	}

	if req.WorkDate != "" {
		workDate, err := time.Parse("2006-01-02", req.WorkDate)
		if err != nil {
			return TimesheetResponse{}, timesheeterrors.ErrInvalidWorkDate
		}
		e.WorkDate = workDate
	}
	if req.StartTime != "" {
		e.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		e.EndTime = req.EndTime
	}
	if !validTimeRange(e.StartTime, e.EndTime) {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidTimeRange
	}
	if req.Description != "" {
		e.Description = req.Description
	}

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update timesheet persist failed", zap.String("entry_id", id), zap.Error(err))
		return TimesheetResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update timesheet commit failed", zap.String("entry_id", id), zap.Error(err))
		return TimesheetResponse{}, err
	}

	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return timesheeterrors.ErrEntryNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapToResponse(e TimesheetEntry) TimesheetResponse {
	return TimesheetResponse{
		ID:          e.ID.String(),
		EmployeeID:  e.EmployeeID.String(),
		WorkDate:    e.WorkDate.Format("2006-01-02"),
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Hours:       e.Hours(),
		Description: e.Description,
	}
}

func mapToListResponse(entries []TimesheetEntry) []TimesheetResponse {
	resp := make([]TimesheetResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToResponse(e)
	}
	return resp
}
