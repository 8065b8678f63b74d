package salary

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	salaryerrors "timecraft/internal/salary/errors"
)

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSalaryRequest) (SalaryResponse, error)
	GetAll(ctx context.Context, page, pageSize int) ([]SalaryResponse, int64, error)
	GetByID(ctx context.Context, id string) (SalaryResponse, error)
	Update(ctx context.Context, id string, req UpdateSalaryRequest) (SalaryResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateSalaryRequest) (SalaryResponse, error) {
	if req.NetAmount > req.GrossAmount {
		return SalaryResponse{}, salaryerrors.ErrNetExceedsGross
	}

	var positionID *uuid.UUID
	if req.PositionID != nil && *req.PositionID != "" {
		v, err := uuid.Parse(*req.PositionID)
		if err != nil {
			return SalaryResponse{}, salaryerrors.ErrInvalidPositionID
		}
		positionID = &v
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create salary begin tx failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	contractType := req.ContractType
	if contractType == "" {
		contractType = "FULL_TIME"
	}

	sal := &Salary{
		ID:           uuid.New(),
		GrossAmount:  req.GrossAmount,
		NetAmount:    req.NetAmount,
		ContractType: contractType,
		PositionID:   positionID,
	}
	if err := qtx.Create(ctx, sal); err != nil {
		s.logger.Error("create salary persist failed", zap.Error(err))
		return SalaryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create salary commit failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	s.logger.Info("create salary success", zap.String("salary_id", sal.ID.String()))

	return mapToResponse(*sal), nil
}

func (s *service) GetAll(ctx context.Context, page, pageSize int) ([]SalaryResponse, int64, error) {
	salaries, total, err := s.repo.FindAll(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(salaries), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (SalaryResponse, error) {
	sal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, salaryerrors.ErrSalaryNotFound
		}
		return SalaryResponse{}, err
	}
	return mapToResponse(*sal), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateSalaryRequest) (SalaryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update salary begin tx failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sal, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, salaryerrors.ErrSalaryNotFound
		}
		return SalaryResponse{}, err
	}

	if req.GrossAmount > 0 {
		sal.GrossAmount = req.GrossAmount
	}
	if req.NetAmount > 0 {
		sal.NetAmount = req.NetAmount
	}
	if sal.NetAmount > sal.GrossAmount {
		return SalaryResponse{}, salaryerrors.ErrNetExceedsGross
	}
	if req.ContractType != "" {
		sal.ContractType = req.ContractType
	}
	if req.PositionID != nil {
		v, err := uuid.Parse(*req.PositionID)
		if err != nil {
			return SalaryResponse{}, salaryerrors.ErrInvalidPositionID
		}
		sal.PositionID = &v
	}

	if err := qtx.Update(ctx, sal); err != nil {
		s.logger.Error("update salary persist failed", zap.String("salary_id", id), zap.Error(err))
		return SalaryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update salary commit failed", zap.String("salary_id", id), zap.Error(err))
		return SalaryResponse{}, err
	}

	return mapToResponse(*sal), nil
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
			return salaryerrors.ErrSalaryNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapToResponse(s Salary) SalaryResponse {
	resp := SalaryResponse{
		ID:           s.ID.String(),
		GrossAmount:  s.GrossAmount,
		NetAmount:    s.NetAmount,
		ContractType: s.ContractType,
	}
	if s.PositionID != nil {
		v := s.PositionID.String()
		resp.PositionID = &v
	}
	return resp
}

func mapToListResponse(salaries []Salary) []SalaryResponse {
	resp := make([]SalaryResponse, len(salaries))
	for i, s := range salaries {
		resp[i] = mapToResponse(s)
	}
	return resp
}
