package employee

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"timecraft/internal/balance"
	employeeerrors "timecraft/internal/employee/errors"
)

const pgUniqueViolation = "23505"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, page, pageSize int) ([]EmployeeResponse, int64, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetByUserID(ctx context.Context, userID string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	balanceRepo balance.Repository
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, balanceRepo balance.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, balanceRepo: balanceRepo, logger: l}
}

// Create inserts the employee and its default time off balance in one
// transaction. An employee never exists without a balance row.
func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("create employee requested", zap.String("user_id", req.UserID))

	userUUID, positionID, salaryID, hireDate, err := validateCreateRequest(req)
	if err != nil {
		s.logger.Warn("create employee validation failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qbal := s.balanceRepo.WithTx(tx)

	e := &Employee{
		ID:         uuid.New(),
		UserID:     userUUID,
		PositionID: positionID,
		SalaryID:   salaryID,
		HireDate:   hireDate,
	}
	if err := qtx.Create(ctx, e); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeExists
		}
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := qbal.Create(ctx, balance.NewDefault(e.ID)); err != nil {
		s.logger.Error("create employee default balance failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("create employee success",
		zap.String("employee_id", e.ID.String()),
		zap.String("user_id", req.UserID),
	)

	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, page, pageSize int) ([]EmployeeResponse, int64, error) {
	employees, total, err := s.repo.FindAll(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(employees), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) GetByUserID(ctx context.Context, userID string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidUserID
	}

	e, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	if req.PositionID != nil {
		positionUUID, err := uuid.Parse(*req.PositionID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidPositionID
		}
		e.PositionID = &positionUUID
	}
	if req.SalaryID != nil {
		salaryUUID, err := uuid.Parse(*req.SalaryID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidSalaryID
		}
		e.SalaryID = &salaryUUID
	}
	if req.HireDate != "" {
		hireDate, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
		}
		e.HireDate = hireDate
	}

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
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
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func validateCreateRequest(req CreateEmployeeRequest) (uuid.UUID, *uuid.UUID, *uuid.UUID, time.Time, error) {
	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return uuid.Nil, nil, nil, time.Time{}, employeeerrors.ErrInvalidUserID
	}

	var positionID *uuid.UUID
	if req.PositionID != nil && *req.PositionID != "" {
		v, err := uuid.Parse(*req.PositionID)
		if err != nil {
			return uuid.Nil, nil, nil, time.Time{}, employeeerrors.ErrInvalidPositionID
		}
		positionID = &v
	}

	var salaryID *uuid.UUID
	if req.SalaryID != nil && *req.SalaryID != "" {
		v, err := uuid.Parse(*req.SalaryID)
		if err != nil {
			return uuid.Nil, nil, nil, time.Time{}, employeeerrors.ErrInvalidSalaryID
		}
		salaryID = &v
	}

	hireDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.HireDate != "" {
		hireDate, err = time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return uuid.Nil, nil, nil, time.Time{}, employeeerrors.ErrInvalidHireDate
		}
	}

	return userUUID, positionID, salaryID, hireDate, nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:     e.ID.String(),
		UserID: e.UserID.String(),
	}
	if e.PositionID != nil {
		v := e.PositionID.String()
		resp.PositionID = &v
	}
	if e.SalaryID != nil {
		v := e.SalaryID.String()
		resp.SalaryID = &v
	}
	if !e.HireDate.IsZero() {
		resp.HireDate = e.HireDate.Format("2006-01-02")
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp
}
