package user

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"timecraft/internal/employee"
	"timecraft/internal/events"
	"timecraft/internal/messaging/kafka"
	"timecraft/internal/middleware"
	"timecraft/internal/rbac"
	usererrors "timecraft/internal/user/errors"
)

const (
	pgUniqueViolation = "23505"
	tokenTTL          = 24 * time.Hour
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	GetAll(ctx context.Context, page, pageSize int) ([]UserResponse, int64, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	publisher    kafka.Publisher
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employeeRepo employee.Repository, publisher kafka.Publisher, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, employeeRepo: employeeRepo, publisher: publisher, logger: l}
}

// Register creates the account and announces it on the welcome-user topic.
// The event is published after commit; if Kafka is down the caller gets the
// error even though the account row exists.
func (s *service) Register(ctx context.Context, req RegisterRequest) (UserResponse, error) {
	s.logger.Debug("register requested",
		zap.String("username", req.Username),
		zap.String("email", req.Email),
	)

	var birthday *time.Time
	if req.Birthday != "" {
		parsed, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidBirthday
		}
		birthday = &parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("register hash failed", zap.Error(err))
		return UserResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u := &User{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		Address:      req.Address,
		Birthday:     birthday,
		Role:         rbac.RoleUser,
		PasswordHash: string(hash),
	}
	if err := qtx.Create(ctx, u); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return UserResponse{}, usererrors.ErrUserExists
		}
		s.logger.Error("register persist failed", zap.Error(err))
		return UserResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("register commit failed", zap.Error(err))
		return UserResponse{}, err
	}

	if err := s.publisher.Publish(ctx, events.WelcomeUserTopic, u.ID.String(), events.WelcomeUserEvent{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
	}); err != nil {
		s.logger.Error("register welcome event failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("register success",
		zap.String("user_id", u.ID.String()),
		zap.String("username", u.Username),
	)
	return mapToResponse(*u), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, usererrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("username", req.Username))
		return LoginResponse{}, usererrors.ErrInvalidCredentials
	}

	// The employee record is optional, freshly registered users have none.
	employeeID := ""
	if e, err := s.employeeRepo.FindByUserID(ctx, u.ID.String()); err == nil {
		employeeID = e.ID.String()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return LoginResponse{}, err
	}

	token, err := signToken(u, employeeID)
	if err != nil {
		s.logger.Error("login sign token failed", zap.Error(err))
		return LoginResponse{}, err
	}

	s.logger.Info("login success", zap.String("user_id", u.ID.String()))
	return LoginResponse{Token: token, User: mapToResponse(*u)}, nil
}

func signToken(u *User, employeeID string) (string, error) {
	now := time.Now().UTC()
	claims := middleware.Claims{
		UserID:     u.ID.String(),
		EmployeeID: employeeID,
		Role:       u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func (s *service) GetAll(ctx context.Context, page, pageSize int) ([]UserResponse, int64, error) {
	users, total, err := s.repo.FindAll(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(users), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Address != "" {
		u.Address = req.Address
	}
	if req.Birthday != "" {
		parsed, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidBirthday
		}
		u.Birthday = &parsed
	}
	if req.Role != "" {
		switch req.Role {
		case rbac.RoleAdmin, rbac.RoleHR, rbac.RoleUser:
			u.Role = req.Role
		default:
			return UserResponse{}, usererrors.ErrInvalidRole
		}
	}

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update user commit failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	return mapToResponse(*u), nil
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
			return usererrors.ErrUserNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Address:   u.Address,
		Role:      u.Role,
	}
	if u.Birthday != nil {
		resp.Birthday = u.Birthday.Format("2006-01-02")
	}
	return resp
}

func mapToListResponse(users []User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp
}
