package timeoff

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"timecraft/internal/shared/scope"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *TimeoffRequest) error
	FindAll(ctx context.Context, page, pageSize int) ([]TimeoffRequest, int64, error)
	FindAllByEmployee(ctx context.Context, employeeID string, page, pageSize int) ([]TimeoffRequest, int64, error)
	FindByID(ctx context.Context, id string) (*TimeoffRequest, error)
	Update(ctx context.Context, r *TimeoffRequest) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, req *TimeoffRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindAll(ctx context.Context, page, pageSize int) ([]TimeoffRequest, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&TimeoffRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []TimeoffRequest
	err := r.db.WithContext(ctx).
		Scopes(scope.Paginate(page, pageSize)).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, total, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string, page, pageSize int) ([]TimeoffRequest, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&TimeoffRequest{}).
		Where("employee_id = ?", employeeID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []TimeoffRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Scopes(scope.Paginate(page, pageSize)).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*TimeoffRequest, error) {
	var req TimeoffRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) Update(ctx context.Context, req *TimeoffRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&TimeoffRequest{}, "id = ?", id).Error
}
