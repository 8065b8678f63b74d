package salary

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"timecraft/internal/shared/scope"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Salary) error
	FindAll(ctx context.Context, page, pageSize int) ([]Salary, int64, error)
	FindByID(ctx context.Context, id string) (*Salary, error)
	Update(ctx context.Context, s *Salary) error
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

func (r *repository) Create(ctx context.Context, s *Salary) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAll(ctx context.Context, page, pageSize int) ([]Salary, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Salary{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var salaries []Salary
	err := r.db.WithContext(ctx).
		Scopes(scope.Paginate(page, pageSize)).
		Order("created_at ASC").
		Find(&salaries).Error
	return salaries, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Salary, error) {
	var s Salary
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) Update(ctx context.Context, s *Salary) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Salary{}, "id = ?", id).Error
}
