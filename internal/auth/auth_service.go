package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	autherrors "go-attendly/internal/auth/errors"
	"go-attendly/internal/employee"
	"go-attendly/internal/shared/contextutil"
	"go-attendly/internal/shared/counter"
	"go-attendly/internal/shared/sanitize"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (TokenResponse, error)
	Me(ctx context.Context, userID string) (MeResponse, error)
}

type service struct {
	db        *sql.DB
	users     Repository
	employees employee.Repository
	counter   counter.Repository
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	db *sql.DB,
	users Repository,
	employees employee.Repository,
	counterRepo counter.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:        db,
		users:     users,
		employees: employees,
		counter:   counterRepo,
		logger:    l,
		now:       time.Now,
	}
}

// Register membuat profil employee dan akun login dalam satu transaksi.
func (s *service) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if !sanitize.StrongPassword(req.Password) {
		return RegisterResponse{}, autherrors.ErrWeakPassword
	}
	email := sanitize.Email(req.Email)

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return RegisterResponse{}, err
	}
	defer tx.Rollback()

	nextVal, err := s.counter.GetNextValue(ctx, "employee_number")
	if err != nil {
		s.logger.Error("register generate employee number failed", zap.Error(err))
		return RegisterResponse{}, err
	}

	empl := &employee.Employee{
		ID:             uuid.New(),
		EmployeeNumber: fmt.Sprintf("EMP-%06d", nextVal),
		FullName:       req.FullName,
		Email:          email,
		Role:           req.Role,
		Department:     req.Department,
		Position:       req.Position,
		Phone:          req.Phone,
	}
	if err := s.employees.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("register create employee failed", zap.String("request_id", rid), zap.Error(err))
		return RegisterResponse{}, mapDuplicateEmail(err)
	}

	user := &User{
		ID:         uuid.New(),
		EmployeeID: empl.ID,
		Email:      email,
		Password:   string(hashed),
		IsActive:   true,
	}
	if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
		s.logger.Error("register create user failed", zap.String("request_id", rid), zap.Error(err))
		return RegisterResponse{}, mapDuplicateEmail(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("register commit failed", zap.String("request_id", rid), zap.Error(err))
		return RegisterResponse{}, err
	}

	s.logger.Info("register success",
		zap.String("request_id", rid),
		zap.String("user_id", user.ID.String()),
		zap.String("employee_id", empl.ID.String()),
	)
	return RegisterResponse{
		UserID:         user.ID.String(),
		EmployeeID:     empl.ID.String(),
		EmployeeNumber: empl.EmployeeNumber,
		Email:          email,
		Role:           empl.Role,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	email := sanitize.Email(req.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return TokenResponse{}, err
	}
	if !user.IsActive {
		return TokenResponse{}, autherrors.ErrAccountDisabled
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	empl, err := s.employees.FindByID(ctx, user.EmployeeID.String())
	if err != nil {
		s.logger.Error("login employee lookup failed", zap.Error(err))
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}
	if empl.Role != req.Role {
		return TokenResponse{}, autherrors.ErrRoleMismatch
	}

	now := s.now()
	lastLogin := now
	user.LastLoginAt = &lastLogin
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Warn("login timestamp update failed", zap.Error(err))
	}

	s.logger.Info("login success",
		zap.String("user_id", user.ID.String()),
		zap.String("role", empl.Role),
	)
	return s.issueTokens(tokenClaims{
		UserID:     user.ID.String(),
		EmployeeID: user.EmployeeID.String(),
		Role:       empl.Role,
	}, now)
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (TokenResponse, error) {
	claims, err := parseRefreshToken(req.RefreshToken)
	if err != nil {
		return TokenResponse{}, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if !user.IsActive {
		return TokenResponse{}, autherrors.ErrAccountDisabled
	}

	return s.issueTokens(claims, s.now())
}

func (s *service) Me(ctx context.Context, userID string) (MeResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MeResponse{}, autherrors.ErrInvalidToken
		}
		s.logger.Error("me user lookup failed", zap.Error(err))
		return MeResponse{}, err
	}
	if !user.IsActive {
		return MeResponse{}, autherrors.ErrAccountDisabled
	}

	empl, err := s.employees.FindByID(ctx, user.EmployeeID.String())
	if err != nil {
		s.logger.Error("me employee lookup failed", zap.Error(err))
		return MeResponse{}, err
	}

	return MeResponse{
		UserID:         user.ID.String(),
		EmployeeID:     empl.ID.String(),
		EmployeeNumber: empl.EmployeeNumber,
		FullName:       empl.FullName,
		Email:          user.Email,
		Role:           empl.Role,
		Department:     empl.Department,
		Position:       empl.Position,
		Phone:          empl.Phone,
		IsVerified:     empl.IsVerified,
	}, nil
}

func (s *service) issueTokens(claims tokenClaims, issuedAt time.Time) (TokenResponse, error) {
	access, err := generateToken(claims, "access", AccessTokenTTL, issuedAt)
	if err != nil {
		return TokenResponse{}, err
	}
	refresh, err := generateToken(claims, "refresh", RefreshTokenTTL, issuedAt)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(AccessTokenTTL.Seconds()),
	}, nil
}

func mapDuplicateEmail(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return autherrors.ErrEmailAlreadyRegistered
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return autherrors.ErrEmailAlreadyRegistered
	}
	return err
}
