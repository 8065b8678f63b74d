package timesheet

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"timecraft/internal/shared/scope"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *TimesheetEntry) error
	FindAll(ctx context.Context, page, pageSize int) ([]TimesheetEntry, int64, error)
	FindAllByEmployee(ctx context.Context, employeeID string, page, pageSize int) ([]TimesheetEntry, int64, error)
	FindByID(ctx context.Context, id string) (*TimesheetEntry, error)
	Update(ctx context.Context, e *TimesheetEntry) error
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

func (r *repository) Create(ctx context.Context, e *TimesheetEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context, page, pageSize int) ([]TimesheetEntry, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&TimesheetEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []TimesheetEntry
	err := r.db.WithContext(ctx).
		Scopes(scope.Paginate(page, pageSize)).
		Order("work_date DESC").
		Find(&entries).Error
	return entries, total, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string, page, pageSize int) ([]TimesheetEntry, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&TimesheetEntry{}).
		Where("employee_id = ?", employeeID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []TimesheetEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Scopes(scope.Paginate(page, pageSize)).
		Order("work_date DESC").
		Find(&entries).Error
	return entries, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*TimesheetEntry, error) {
	var e TimesheetEntry
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *TimesheetEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&TimesheetEntry{}, "id = ?", id).Error
}
