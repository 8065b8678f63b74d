package balance_test

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
	balanceerrors "timecraft/internal/balance/errors"
)

type fakeBalanceRepository struct {
	withTxFn           func(tx *sql.Tx) balance.Repository
	createFn           func(ctx context.Context, b *balance.TimeoffBalance) error
	findByEmployeeIDFn func(ctx context.Context, employeeID string) (*balance.TimeoffBalance, error)
	findByIDFn         func(ctx context.Context, id string) (*balance.TimeoffBalance, error)
	findAllFn          func(ctx context.Context, page, pageSize int) ([]balance.TimeoffBalance, int64, error)
	updateFn           func(ctx context.Context, b *balance.TimeoffBalance) error
	deleteFn           func(ctx context.Context, id string) error
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) balance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeBalanceRepository) Create(ctx context.Context, b *balance.TimeoffBalance) error {
	if f.createFn != nil {
		return f.createFn(ctx, b)
	}
	return nil
}

func (f *fakeBalanceRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*balance.TimeoffBalance, error) {
	if f.findByEmployeeIDFn != nil {
		return f.findByEmployeeIDFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) FindByID(ctx context.Context, id string) (*balance.TimeoffBalance, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) FindAll(ctx context.Context, page, pageSize int) ([]balance.TimeoffBalance, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, page, pageSize)
	}
	return nil, 0, nil
}

func (f *fakeBalanceRepository) Update(ctx context.Context, b *balance.TimeoffBalance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, b)
	}
	return nil
}

func (f *fakeBalanceRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type balanceServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service balance.Service
	repo    *fakeBalanceRepository
}

func setupBalanceServiceTest(t *testing.T) *balanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeBalanceRepository{}
	svc := balance.NewService(db, repo)

	return &balanceServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
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

func storedBalance(employeeID string) *balance.TimeoffBalance {
	return &balance.TimeoffBalance{
		ID:           uuid.New(),
		EmployeeID:   uuid.MustParse(employeeID),
		VacationDays: balance.DefaultVacationDays,
		SickDays:     balance.DefaultSickDays,
		PersonalDays: balance.DefaultPersonalDays,
		OtherDays:    balance.DefaultOtherDays,
	}
}

func TestBalanceService_GetBalance(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("returns category days", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByEmployeeIDFn = func(ctx context.Context, eid string) (*balance.TimeoffBalance, error) {
			assert.Equal(t, employeeID, eid)
			return storedBalance(employeeID), nil
		}

		days, err := deps.service.GetBalance(ctx, employeeID, balance.CategoryVacation)

		assert.NoError(t, err)
		assert.Equal(t, balance.DefaultVacationDays, days)
	})

	t.Run("unknown category", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetBalance(ctx, employeeID, "HOLIDAY")

		assert.ErrorIs(t, err, balanceerrors.ErrUnknownCategory)
	})

	t.Run("invalid employee id", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetBalance(ctx, "not-a-uuid", balance.CategorySick)

		assert.ErrorIs(t, err, balanceerrors.ErrInvalidEmployeeID)
	})

	t.Run("balance missing", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByEmployeeIDFn = func(ctx context.Context, eid string) (*balance.TimeoffBalance, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.GetBalance(ctx, employeeID, balance.CategorySick)

		assert.ErrorIs(t, err, balanceerrors.ErrBalanceNotFound)
	})
}

func TestBalanceService_ChangeBalance(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("decrement persists", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByEmployeeIDFn = func(ctx context.Context, eid string) (*balance.TimeoffBalance, error) {
			return storedBalance(employeeID), nil
		}
		var saved *balance.TimeoffBalance
		deps.repo.updateFn = func(ctx context.Context, b *balance.TimeoffBalance) error {
			saved = b
			return nil
		}

		resp, err := deps.service.ChangeBalance(ctx, balance.ChangeBalanceRequest{
			EmployeeID: employeeID,
			Type:       balance.CategoryVacation,
			Quantity:   -3,
		})

		assert.NoError(t, err)
		assert.NotNil(t, saved)
		assert.Equal(t, balance.DefaultVacationDays-3, saved.VacationDays)
		assert.Equal(t, balance.DefaultVacationDays-3, resp.VacationDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("balance may go negative", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		b := storedBalance(employeeID)
		b.OtherDays = 2
		deps.repo.findByEmployeeIDFn = func(ctx context.Context, eid string) (*balance.TimeoffBalance, error) {
			return b, nil
		}

		resp, err := deps.service.ChangeBalance(ctx, balance.ChangeBalanceRequest{
			EmployeeID: employeeID,
			Type:       balance.CategoryOther,
			Quantity:   -5,
		})

		assert.NoError(t, err)
		assert.Equal(t, -3, resp.OtherDays)
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.ChangeBalance(ctx, balance.ChangeBalanceRequest{
			EmployeeID: employeeID,
			Type:       balance.CategoryVacation,
			Quantity:   0,
		})

		assert.ErrorIs(t, err, balanceerrors.ErrZeroQuantity)
	})

	t.Run("update failure rolls back", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByEmployeeIDFn = func(ctx context.Context, eid string) (*balance.TimeoffBalance, error) {
			return storedBalance(employeeID), nil
		}
		deps.repo.updateFn = func(ctx context.Context, b *balance.TimeoffBalance) error {
			return errors.New("db down")
		}

		_, err := deps.service.ChangeBalance(ctx, balance.ChangeBalanceRequest{
			EmployeeID: employeeID,
			Type:       balance.CategorySick,
			Quantity:   1,
		})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestBalanceService_UsedDays(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("fresh balance has zero used days", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByEmployeeIDFn = func(ctx context.Context, eid string) (*balance.TimeoffBalance, error) {
			return storedBalance(employeeID), nil
		}

		used, err := deps.service.UsedDays(ctx, employeeID)

		assert.NoError(t, err)
		assert.Equal(t, 0, used)
	})

	t.Run("negative category counts as extra usage", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		b := storedBalance(employeeID)
		b.VacationDays = 0
		b.SickDays = -2
		b.PersonalDays = 5
		b.OtherDays = 5
		deps.repo.findByEmployeeIDFn = func(ctx context.Context, eid string) (*balance.TimeoffBalance, error) {
			return b, nil
		}

		used, err := deps.service.UsedDays(ctx, employeeID)

		assert.NoError(t, err)
		assert.Equal(t, 32, used)
	})
}

func TestBalanceService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.createFn = func(ctx context.Context, b *balance.TimeoffBalance) error {
			assert.Equal(t, uuid.MustParse(employeeID), b.EmployeeID)
			assert.Equal(t, 15, b.VacationDays)
			return nil
		}

		resp, err := deps.service.Create(ctx, balance.CreateBalanceRequest{
			EmployeeID:   employeeID,
			VacationDays: 15,
			SickDays:     8,
		})

		assert.NoError(t, err)
		assert.Equal(t, employeeID, resp.EmployeeID)
		assert.Equal(t, 15, resp.VacationDays)
	})

	t.Run("invalid employee id", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, balance.CreateBalanceRequest{EmployeeID: "nope"})

		assert.ErrorIs(t, err, balanceerrors.ErrInvalidEmployeeID)
	})
}

func TestBalanceService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing balance", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*balance.TimeoffBalance, error) {
			return nil, gorm.ErrRecordNotFound
		}

		err := deps.service.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, balanceerrors.ErrBalanceNotFound)
	})
}
