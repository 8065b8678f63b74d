package position

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	positionerrors "timecraft/internal/position/errors"
)

// PositionAllKey caches the full catalog. Positions are master data that
// changes rarely, so a long TTL plus invalidation on write is enough.
const (
	PositionAllKey = "positions:all"
	positionAllTTL = 30 * time.Minute
)

//go:generate mockgen -source=position_service.go -destination=mock/position_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePositionRequest) (PositionResponse, error)
	GetAll(ctx context.Context) ([]PositionResponse, error)
	GetByID(ctx context.Context, id string) (PositionResponse, error)
	Update(ctx context.Context, id string, req UpdatePositionRequest) (PositionResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("position.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("position.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) invalidateCatalog(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, PositionAllKey).Err(); err != nil {
		s.logger.Error("cache invalidation failed", zap.String("key", PositionAllKey), zap.Error(err))
	}
}

func (s *service) Create(ctx context.Context, req CreatePositionRequest) (PositionResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p := &Position{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := qtx.Create(ctx, p); err != nil {
		return PositionResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PositionResponse{}, err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info("create position success", zap.String("position_id", p.ID.String()))

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]PositionResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, PositionAllKey).Result()
		if err == nil {
			var resp []PositionResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses concurrent cache misses into one query.
	v, err, _ := s.sf.Do(PositionAllKey, func() (interface{}, error) {
		positions, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(positions)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, PositionAllKey, jsonData, positionAllTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]PositionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PositionResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PositionResponse{}, positionerrors.ErrPositionNotFound
		}
		return PositionResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePositionRequest) (PositionResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PositionResponse{}, positionerrors.ErrPositionNotFound
		}
		return PositionResponse{}, err
	}

	p.Name = req.Name
	p.Description = req.Description

	if err := qtx.Update(ctx, p); err != nil {
		return PositionResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PositionResponse{}, err
	}

	s.invalidateCatalog(ctx)

	return mapToResponse(*p), nil
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
			return positionerrors.ErrPositionNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateCatalog(ctx)

	return nil
}

func mapToResponse(p Position) PositionResponse {
	return PositionResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
	}
}

func mapToListResponse(positions []Position) []PositionResponse {
	resp := make([]PositionResponse, len(positions))
	for i, p := range positions {
		resp[i] = mapToResponse(p)
	}
	return resp
}
