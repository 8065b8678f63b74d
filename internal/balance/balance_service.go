package balance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	balanceerrors "timecraft/internal/balance/errors"
)

const pgUniqueViolation = "23505"

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	GetBalance(ctx context.Context, employeeID, category string) (int, error)
	GetByEmployee(ctx context.Context, employeeID string) (BalanceResponse, error)
	GetAll(ctx context.Context, page, pageSize int) ([]BalanceResponse, int64, error)
	ChangeBalance(ctx context.Context, req ChangeBalanceRequest) (BalanceResponse, error)
	UsedDays(ctx context.Context, employeeID string) (int, error)
	Create(ctx context.Context, req CreateBalanceRequest) (BalanceResponse, error)
	Update(ctx context.Context, id string, req UpdateBalanceRequest) (BalanceResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetBalance(ctx context.Context, employeeID, category string) (int, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return 0, balanceerrors.ErrInvalidEmployeeID
	}
	category, err := ParseCategory(category)
	if err != nil {
		return 0, err
	}

	b, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, balanceerrors.ErrBalanceNotFound
		}
		return 0, err
	}
	return b.Days(category)
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidEmployeeID
	}

	b, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, balanceerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}
	return mapToResponse(*b), nil
}

func (s *service) GetAll(ctx context.Context, page, pageSize int) ([]BalanceResponse, int64, error) {
	balances, total, err := s.repo.FindAll(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(balances), total, nil
}

func (s *service) ChangeBalance(ctx context.Context, req ChangeBalanceRequest) (BalanceResponse, error) {
	s.logger.Debug("change balance requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("type", req.Type),
		zap.Int("quantity", req.Quantity),
	)

	if req.Quantity == 0 {
		return BalanceResponse{}, balanceerrors.ErrZeroQuantity
	}
	category, err := ParseCategory(req.Type)
	if err != nil {
		return BalanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("change balance begin tx failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, balanceerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}

	if err := b.AddDays(category, req.Quantity); err != nil {
		return BalanceResponse{}, err
	}
	if err := qtx.Update(ctx, b); err != nil {
		s.logger.Error("change balance persist failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("change balance commit failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	s.logger.Info("change balance success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("type", category),
		zap.Int("quantity", req.Quantity),
	)

	return mapToResponse(*b), nil
}

// UsedDays counts how much of the yearly allotment has been consumed. A
// negative category balance counts as extra used days.
func (s *service) UsedDays(ctx context.Context, employeeID string) (int, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return 0, balanceerrors.ErrInvalidEmployeeID
	}

	b, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, balanceerrors.ErrBalanceNotFound
		}
		return 0, err
	}
	return TotalTimeoffDays - b.Remaining(), nil
}

func (s *service) Create(ctx context.Context, req CreateBalanceRequest) (BalanceResponse, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create balance begin tx failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b := &TimeoffBalance{
		ID:           uuid.New(),
		EmployeeID:   employeeUUID,
		VacationDays: req.VacationDays,
		SickDays:     req.SickDays,
		PersonalDays: req.PersonalDays,
		OtherDays:    req.OtherDays,
	}
	if err := qtx.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return BalanceResponse{}, balanceerrors.ErrBalanceExists
		}
		s.logger.Error("create balance persist failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create balance commit failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	s.logger.Info("create balance success",
		zap.String("balance_id", b.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(*b), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateBalanceRequest) (BalanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update balance begin tx failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, balanceerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}

	b.VacationDays = req.VacationDays
	b.SickDays = req.SickDays
	b.PersonalDays = req.PersonalDays
	b.OtherDays = req.OtherDays

	if err := qtx.Update(ctx, b); err != nil {
		s.logger.Error("update balance persist failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update balance commit failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	return mapToResponse(*b), nil
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
			return balanceerrors.ErrBalanceNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapToResponse(b TimeoffBalance) BalanceResponse {
	return BalanceResponse{
		ID:           b.ID.String(),
		EmployeeID:   b.EmployeeID.String(),
		VacationDays: b.VacationDays,
		SickDays:     b.SickDays,
		PersonalDays: b.PersonalDays,
		OtherDays:    b.OtherDays,
	}
}

func mapToListResponse(balances []TimeoffBalance) []BalanceResponse {
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp
}
