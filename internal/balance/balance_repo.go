package balance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"timecraft/internal/shared/scope"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *TimeoffBalance) error
	FindByEmployeeID(ctx context.Context, employeeID string) (*TimeoffBalance, error)
	FindByID(ctx context.Context, id string) (*TimeoffBalance, error)
	FindAll(ctx context.Context, page, pageSize int) ([]TimeoffBalance, int64, error)
	Update(ctx context.Context, b *TimeoffBalance) error
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

func (r *repository) Create(ctx context.Context, b *TimeoffBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID string) (*TimeoffBalance, error) {
	var b TimeoffBalance
	err := r.db.WithContext(ctx).
		First(&b, "employee_id = ?", employeeID).Error
	return &b, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*TimeoffBalance, error) {
	var b TimeoffBalance
	err := r.db.WithContext(ctx).
		First(&b, "id = ?", id).Error
	return &b, err
}

func (r *repository) FindAll(ctx context.Context, page, pageSize int) ([]TimeoffBalance, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&TimeoffBalance{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var balances []TimeoffBalance
	err := r.db.WithContext(ctx).
		Scopes(scope.Paginate(page, pageSize)).
		Order("created_at ASC").
		Find(&balances).Error
	return balances, total, err
}

func (r *repository) Update(ctx context.Context, b *TimeoffBalance) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&TimeoffBalance{}, "id = ?", id).Error
}
