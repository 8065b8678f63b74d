package timeoff_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"timecraft/internal/balance"
	balanceerrors "timecraft/internal/balance/errors"
	"timecraft/internal/employee"
	"timecraft/internal/events"
	"timecraft/internal/timeoff"
	timeofferrors "timecraft/internal/timeoff/errors"
	"timecraft/internal/user"
)

type fakeTimeoffRepository struct {
	withTxFn            func(tx *sql.Tx) timeoff.Repository
	createFn            func(ctx context.Context, r *timeoff.TimeoffRequest) error
	findAllFn           func(ctx context.Context, page, pageSize int) ([]timeoff.TimeoffRequest, int64, error)
	findAllByEmployeeFn func(ctx context.Context, employeeID string, page, pageSize int) ([]timeoff.TimeoffRequest, int64, error)
	findByIDFn          func(ctx context.Context, id string) (*timeoff.TimeoffRequest, error)
	updateFn            func(ctx context.Context, r *timeoff.TimeoffRequest) error
	deleteFn            func(ctx context.Context, id string) error
}

func (f *fakeTimeoffRepository) WithTx(tx *sql.Tx) timeoff.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeTimeoffRepository) Create(ctx context.Context, r *timeoff.TimeoffRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, r)
	}
	return nil
}

func (f *fakeTimeoffRepository) FindAll(ctx context.Context, page, pageSize int) ([]timeoff.TimeoffRequest, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, page, pageSize)
	}
	return nil, 0, nil
}

func (f *fakeTimeoffRepository) FindAllByEmployee(ctx context.Context, employeeID string, page, pageSize int) ([]timeoff.TimeoffRequest, int64, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID, page, pageSize)
	}
	return nil, 0, nil
}

func (f *fakeTimeoffRepository) FindByID(ctx context.Context, id string) (*timeoff.TimeoffRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTimeoffRepository) Update(ctx context.Context, r *timeoff.TimeoffRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, r)
	}
	return nil
}

func (f *fakeTimeoffRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeEmployeeRepository struct {
	findByIDFn     func(ctx context.Context, id string) (*employee.Employee, error)
	findByUserIDFn func(ctx context.Context, userID string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error { return nil }

func (f *fakeEmployeeRepository) FindAll(ctx context.Context, page, pageSize int) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	if f.findByUserIDFn != nil {
		return f.findByUserIDFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error { return nil }

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error { return nil }

type fakeUserRepository struct {
	findByIDFn func(ctx context.Context, id string) (*user.User, error)
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) FindAll(ctx context.Context, page, pageSize int) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) Delete(ctx context.Context, id string) error { return nil }

type fakeBalanceRepository struct {
	findByEmployeeIDFn func(ctx context.Context, employeeID string) (*balance.TimeoffBalance, error)
	updateFn           func(ctx context.Context, b *balance.TimeoffBalance) error
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) balance.Repository { return f }

func (f *fakeBalanceRepository) Create(ctx context.Context, b *balance.TimeoffBalance) error {
	return nil
}

func (f *fakeBalanceRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*balance.TimeoffBalance, error) {
	if f.findByEmployeeIDFn != nil {
		return f.findByEmployeeIDFn(ctx, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) FindByID(ctx context.Context, id string) (*balance.TimeoffBalance, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) FindAll(ctx context.Context, page, pageSize int) ([]balance.TimeoffBalance, int64, error) {
	return nil, 0, nil
}

func (f *fakeBalanceRepository) Update(ctx context.Context, b *balance.TimeoffBalance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, b)
	}
	return nil
}

func (f *fakeBalanceRepository) Delete(ctx context.Context, id string) error { return nil }

type publishedEvent struct {
	topic   string
	key     string
	payload any
}

type fakePublisher struct {
	publishFn func(ctx context.Context, topic, key string, payload any) error
	published []publishedEvent
}

func (f *fakePublisher) Publish(ctx context.Context, topic, key string, payload any) error {
	if f.publishFn != nil {
		if err := f.publishFn(ctx, topic, key, payload); err != nil {
			return err
		}
	}
	f.published = append(f.published, publishedEvent{topic: topic, key: key, payload: payload})
	return nil
}

type timeoffServiceDeps struct {
	db           *sql.DB
	sqlMock      sqlmock.Sqlmock
	service      timeoff.Service
	repo         *fakeTimeoffRepository
	employeeRepo *fakeEmployeeRepository
	userRepo     *fakeUserRepository
	balanceRepo  *fakeBalanceRepository
	publisher    *fakePublisher
}

func setupTimeoffServiceTest(t *testing.T) *timeoffServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeTimeoffRepository{}
	employeeRepo := &fakeEmployeeRepository{}
	userRepo := &fakeUserRepository{}
	balanceRepo := &fakeBalanceRepository{}
	publisher := &fakePublisher{}
	svc := timeoff.NewService(db, repo, employeeRepo, userRepo, balanceRepo, publisher)

	return &timeoffServiceDeps{
		db:           db,
		sqlMock:      sqlMock,
		service:      svc,
		repo:         repo,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		balanceRepo:  balanceRepo,
		publisher:    publisher,
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

type applyFixture struct {
	userID     string
	employeeID uuid.UUID
}

func bindApplyFixture(deps *timeoffServiceDeps) applyFixture {
	userUUID := uuid.New()
	employeeID := uuid.New()

	deps.employeeRepo.findByUserIDFn = func(ctx context.Context, uid string) (*employee.Employee, error) {
		return &employee.Employee{ID: employeeID, UserID: userUUID}, nil
	}
	deps.userRepo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
		return &user.User{
			ID:        userUUID,
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		}, nil
	}
	deps.balanceRepo.findByEmployeeIDFn = func(ctx context.Context, eid string) (*balance.TimeoffBalance, error) {
		return &balance.TimeoffBalance{
			ID:           uuid.New(),
			EmployeeID:   employeeID,
			VacationDays: balance.DefaultVacationDays,
			SickDays:     balance.DefaultSickDays,
			PersonalDays: balance.DefaultPersonalDays,
			OtherDays:    balance.DefaultOtherDays,
		}, nil
	}

	return applyFixture{userID: userUUID.String(), employeeID: employeeID}
}

func TestTimeoffService_Apply(t *testing.T) {
	ctx := context.Background()

	validReq := timeoff.ApplyRequest{
		Type:      balance.CategoryVacation,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-05",
		Comment:   "short trip",
	}

	t.Run("success creates pending request and publishes both events", func(t *testing.T) {
		deps := setupTimeoffServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		fx := bindApplyFixture(deps)

		var created *timeoff.TimeoffRequest
		deps.repo.createFn = func(ctx context.Context, r *timeoff.TimeoffRequest) error {
			created = r
			return nil
		}

		resp, err := deps.service.Apply(ctx, fx.userID, validReq)

		assert.NoError(t, err)
		assert.True(t, resp.Submitted)
		assert.NotEmpty(t, resp.RequestID)

		assert.NotNil(t, created)
		assert.Equal(t, fx.employeeID, created.EmployeeID)
		assert.Equal(t, timeoff.StatusPending, created.Status)
		assert.Equal(t, 3, created.Days())

		assert.Len(t, deps.publisher.published, 2)
		assert.Equal(t, events.TimeoffRequestUserTopic, deps.publisher.published[0].topic)
		assert.Equal(t, events.TimeoffHRTopic, deps.publisher.published[1].topic)

		userEvt, ok := deps.publisher.published[0].payload.(events.TimeoffRequestUserEvent)
		assert.True(t, ok)
		assert.Equal(t, "ada@example.com", userEvt.Email)
		assert.Equal(t, "2026-03-02", userEvt.StartDate)

		hrEvt, ok := deps.publisher.published[1].payload.(events.TimeoffHREvent)
		assert.True(t, ok)
		assert.Equal(t, "Ada", hrEvt.UserFirstName)
		assert.Equal(t, "short trip", hrEvt.Comment)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("user without employee record is not submitted", func(t *testing.T) {
		deps := setupTimeoffServiceTest(t)
		defer deps.db.Close()

		created := false
		deps.repo.createFn = func(ctx context.Context, r *timeoff.TimeoffRequest) error {
			created = true
			return nil
		}

		resp, err := deps.service.Apply(ctx, uuid.New().String(), validReq)

		assert.NoError(t, err)
		assert.False(t, resp.Submitted)
		assert.Empty(t, resp.RequestID)
		assert.False(t, created)
		assert.Empty(t, deps.publisher.published)
	})

	t.Run("unknown category", func(t *testing.T) {
		deps := setupTimeoffServiceTest(t)
		defer deps.db.Close()

		fx := bindApplyFixture(deps)

		bad := validReq
		bad.Type = "SABBATICAL"

		_, err := deps.service.Apply(ctx, fx.userID, bad)

		assert.ErrorIs(t, err, balanceerrors.ErrUnknownCategory)
		assert.Empty(t, deps.publisher.published)
	})

	t.Run("end before start", func(t *testing.T) {
		deps := setupTimeoffServiceTest(t)
		defer deps.db.Close()

		fx := bindApplyFixture(deps)

		bad := validReq
		bad.StartDate = "2026-03-05"
		bad.EndDate = "2026-03-02"

		_, err := deps.service.Apply(ctx, fx.userID, bad)

		assert.ErrorIs(t, err, timeofferrors.ErrInvalidDateRange)
	})

	t.Run("insufficient balance leaves no request", func(t *testing.T) {
		deps := setupTimeoffServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		fx := bindApplyFixture(deps)

		deps.balanceRepo.findByEmployeeIDFn = func(ctx context.Context, eid string) (*balance.TimeoffBalance, error) {
			return &balance.TimeoffBalance{EmployeeID: fx.employeeID, VacationDays: 2}, nil
		}

		created := false
		deps.repo.createFn = func(ctx context.Context, r *timeoff.TimeoffRequest) error {
			created = true
			return nil
		}

		_, err := deps.service.Apply(ctx, fx.userID, validReq)

		assert.ErrorIs(t, err, timeofferrors.ErrInsufficientBalance)
		assert.False(t, created)
		assert.Empty(t, deps.publisher.published)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("same-day request costs zero days", func(t *testing.T) {
		deps := setupTimeoffServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		fx := bindApplyFixture(deps)

		var created *timeoff.TimeoffRequest
		deps.repo.createFn = func(ctx context.Context, r *timeoff.TimeoffRequest) error {
			created = r
			return nil
		}

		sameDay := validReq
		sameDay.StartDate = "2026-03-02"
		sameDay.EndDate = "2026-03-02"

		resp, err := deps.service.Apply(ctx, fx.userID, sameDay)

		assert.NoError(t, err)
		assert.True(t, resp.Submitted)
		assert.Equal(t, 0, created.Days())
	})

	t.Run("publish failure surfaces after commit", func(t *testing.T) {
		deps := setupTimeoffServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		fx := bindApplyFixture(deps)

		deps.publisher.publishFn = func(ctx context.Context, topic, key string, payload any) error {
			return errors.New("broker unreachable")
		}

		_, err := deps.service.Apply(ctx, fx.userID, validReq)

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

type decideFixture struct {
	request *timeoff.TimeoffRequest
	balance *balance.TimeoffBalance
}

func bindDecideFixture(deps *timeoffServiceDeps, status string) decideFixture {
	userUUID := uuid.New()
	employeeID := uuid.New()

	req := &timeoff.TimeoffRequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Type:       balance.CategoryVacation,
		StartDate:  mustDate("2026-03-02"),
		EndDate:    mustDate("2026-03-05"),
		Status:     status,
	}
	bal := &balance.TimeoffBalance{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		VacationDays: 10,
		SickDays:     10,
		PersonalDays: 5,
		OtherDays:    5,
	}

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeoff.TimeoffRequest, error) {
		return req, nil
	}
	deps.balanceRepo.findByEmployeeIDFn = func(ctx context.Context, eid string) (*balance.TimeoffBalance, error) {
		return bal, nil
	}
	deps.employeeRepo.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		return &employee.Employee{ID: employeeID, UserID: userUUID}, nil
	}
	deps.userRepo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
		return &user.User{ID: userUUID, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}, nil
	}

	return decideFixture{request: req, balance: bal}
}

func mustDate(v string) (t time.Time) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTimeoffService_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("approve burns balance and publishes status event", func(t *testing.T) {
		deps := setupTimeoffServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		fx := bindDecideFixture(deps, timeoff.StatusPending)

		resp, err := deps.service.Approve(ctx, fx.request.ID.String(), timeoff.DecideRequest{})

		assert.NoError(t, err)
		assert.Equal(t, timeoff.StatusApproved, resp.Status)
		assert.Equal(t, 7, fx.balance.VacationDays)

		assert.Len(t, deps.publisher.published, 1)
		evt, ok := deps.publisher.published[0].payload.(events.TimeoffStatusEvent)
		assert.True(t, ok)
		assert.Equal(t, events.TimeoffRequestStatusTopic, deps.publisher.published[0].topic)
		assert.Equal(t, timeoff.StatusPending, evt.FromStatus)
		assert.Equal(t, timeoff.StatusApproved, evt.ToStatus)
		assert.Equal(t, "ada@example.com", evt.Email)
	})

	t.Run("deny leaves balance untouched", func(t *testing.T) {
		deps := setupTimeoffServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		fx := bindDecideFixture(deps, timeoff.StatusPending)

		balanceTouched := false
		deps.balanceRepo.updateFn = func(ctx context.Context, b *balance.TimeoffBalance) error {
			balanceTouched = true
			return nil
		}

		resp, err := deps.service.Deny(ctx, fx.request.ID.String(), timeoff.DecideRequest{Comment: "busy period"})

		assert.NoError(t, err)
		assert.Equal(t, timeoff.StatusDenied, resp.Status)
		assert.False(t, balanceTouched)
		assert.Equal(t, 10, fx.balance.VacationDays)
	})

	t.Run("double approve is rejected without a second burn", func(t *testing.T) {
		deps := setupTimeoffServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		fx := bindDecideFixture(deps, timeoff.StatusApproved)

		_, err := deps.service.Approve(ctx, fx.request.ID.String(), timeoff.DecideRequest{})

		assert.ErrorIs(t, err, timeofferrors.ErrAlreadyApproved)
		assert.Equal(t, 10, fx.balance.VacationDays)
		assert.Empty(t, deps.publisher.published)
	})

	t.Run("double deny is rejected", func(t *testing.T) {
		deps := setupTimeoffServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		fx := bindDecideFixture(deps, timeoff.StatusDenied)

		_, err := deps.service.Deny(ctx, fx.request.ID.String(), timeoff.DecideRequest{})

		assert.ErrorIs(t, err, timeofferrors.ErrAlreadyDenied)
	})

	t.Run("approving a denied request is allowed", func(t *testing.T) {
		deps := setupTimeoffServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		fx := bindDecideFixture(deps, timeoff.StatusDenied)

		resp, err := deps.service.Approve(ctx, fx.request.ID.String(), timeoff.DecideRequest{})

		assert.NoError(t, err)
		assert.Equal(t, timeoff.StatusApproved, resp.Status)
		assert.Equal(t, 7, fx.balance.VacationDays)
	})

	t.Run("unknown request", func(t *testing.T) {
		deps := setupTimeoffServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Approve(ctx, uuid.New().String(), timeoff.DecideRequest{})

		assert.ErrorIs(t, err, timeofferrors.ErrRequestNotFound)
	})

	t.Run("publish failure surfaces after commit", func(t *testing.T) {
		deps := setupTimeoffServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		fx := bindDecideFixture(deps, timeoff.StatusPending)

		deps.publisher.publishFn = func(ctx context.Context, topic, key string, payload any) error {
			return errors.New("broker unreachable")
		}

		_, err := deps.service.Approve(ctx, fx.request.ID.String(), timeoff.DecideRequest{})

		assert.Error(t, err)
	})
}
