package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"timecraft/internal/balance"
	"timecraft/internal/employee"
	employeeerrors "timecraft/internal/employee/errors"
)

type fakeEmployeeRepository struct {
	withTxFn       func(tx *sql.Tx) employee.Repository
	createFn       func(ctx context.Context, e *employee.Employee) error
	findAllFn      func(ctx context.Context, page, pageSize int) ([]employee.Employee, int64, error)
	findByIDFn     func(ctx context.Context, id string) (*employee.Employee, error)
	findByUserIDFn func(ctx context.Context, userID string) (*employee.Employee, error)
	updateFn       func(ctx context.Context, e *employee.Employee) error
	deleteFn       func(ctx context.Context, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context, page, pageSize int) ([]employee.Employee, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, page, pageSize)
	}
	return nil, 0, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	if f.findByUserIDFn != nil {
		return f.findByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeBalanceRepository struct {
	createFn func(ctx context.Context, b *balance.TimeoffBalance) error
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) balance.Repository { return f }

func (f *fakeBalanceRepository) Create(ctx context.Context, b *balance.TimeoffBalance) error {
	if f.createFn != nil {
		return f.createFn(ctx, b)
	}
	return nil
}

func (f *fakeBalanceRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*balance.TimeoffBalance, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) FindByID(ctx context.Context, id string) (*balance.TimeoffBalance, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) FindAll(ctx context.Context, page, pageSize int) ([]balance.TimeoffBalance, int64, error) {
	return nil, 0, nil
}

func (f *fakeBalanceRepository) Update(ctx context.Context, b *balance.TimeoffBalance) error {
	return nil
}

func (f *fakeBalanceRepository) Delete(ctx context.Context, id string) error { return nil }

type employeeServiceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     employee.Service
	repo        *fakeEmployeeRepository
	balanceRepo *fakeBalanceRepository
}

func setupEmployeeServiceTest(t *testing.T) *employeeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{}
	balanceRepo := &fakeBalanceRepository{}
	svc := employee.NewService(db, repo, balanceRepo)

	return &employeeServiceDeps{
		db:          db,
		sqlMock:     sqlMock,
		service:     svc,
		repo:        repo,
		balanceRepo: balanceRepo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("creates employee with default balance", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		var createdEmployee *employee.Employee
		deps.repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			createdEmployee = e
			return nil
		}

		var createdBalance *balance.TimeoffBalance
		deps.balanceRepo.createFn = func(ctx context.Context, b *balance.TimeoffBalance) error {
			createdBalance = b
			return nil
		}

		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			UserID:   userID,
			HireDate: "2026-01-15",
		})

		assert.NoError(t, err)
		assert.NotNil(t, createdEmployee)
		assert.Equal(t, uuid.MustParse(userID), createdEmployee.UserID)
		assert.NotNil(t, createdBalance)
		assert.Equal(t, createdEmployee.ID, createdBalance.EmployeeID)
		assert.Equal(t, balance.DefaultVacationDays, createdBalance.VacationDays)
		assert.Equal(t, balance.DefaultSickDays, createdBalance.SickDays)
		assert.Equal(t, balance.DefaultPersonalDays, createdBalance.PersonalDays)
		assert.Equal(t, balance.DefaultOtherDays, createdBalance.OtherDays)
		assert.Equal(t, userID, resp.UserID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("balance insert failure rolls employee back", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.balanceRepo.createFn = func(ctx context.Context, b *balance.TimeoffBalance) error {
			return errors.New("db down")
		}

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{UserID: userID})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid user id", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{UserID: "nope"})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidUserID)
	})
}

func TestEmployeeService_GetByUserID(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("found", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		id := uuid.New()
		deps.repo.findByUserIDFn = func(ctx context.Context, uid string) (*employee.Employee, error) {
			assert.Equal(t, userID, uid)
			return &employee.Employee{ID: id, UserID: uuid.MustParse(userID)}, nil
		}

		resp, err := deps.service.GetByUserID(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
	})

	t.Run("missing", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByUserIDFn = func(ctx context.Context, uid string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.GetByUserID(ctx, userID)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("sets position", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		id := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, eid string) (*employee.Employee, error) {
			return &employee.Employee{ID: id, UserID: uuid.New()}, nil
		}

		positionID := uuid.New().String()
		resp, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{
			PositionID: &positionID,
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp.PositionID)
		assert.Equal(t, positionID, *resp.PositionID)
	})

	t.Run("missing employee", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, eid string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Update(ctx, uuid.New().String(), employee.UpdateEmployeeRequest{})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
