package auth

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	autherrors "go-attendly/internal/auth/errors"
	"go-attendly/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

type fakeUserRepo struct {
	createFn      func(ctx context.Context, u *User) error
	findByEmailFn func(ctx context.Context, email string) (*User, error)
	findByIDFn    func(ctx context.Context, id string) (*User, error)
	updateFn      func(ctx context.Context, u *User) error
}

func (f *fakeUserRepo) WithTx(tx *sql.Tx) Repository          { return f }
func (f *fakeUserRepo) Create(ctx context.Context, u *User) error { return f.createFn(ctx, u) }
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	return f.findByEmailFn(ctx, email)
}
func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*User, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeUserRepo) Update(ctx context.Context, u *User) error { return f.updateFn(ctx, u) }

type fakeEmployeeRepo struct {
	createFn   func(ctx context.Context, e *employee.Employee) error
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error {
	return f.createFn(ctx, e)
}
func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeEmployeeRepo) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) FindAdminIDs(ctx context.Context) ([]string, error) { return nil, nil }
func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

func TestService_Register_WeakPassword(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeUserRepo{}, &fakeEmployeeRepo{}, &fakeCounter{})
	_, err := svc.Register(context.Background(), RegisterRequest{
		FullName: "Test User",
		Email:    "test@example.com",
		Password: "short",
		Role:     "EMPLOYEE",
	})
	assert.ErrorIs(t, err, autherrors.ErrWeakPassword)
}

func TestService_Register_CreatesEmployeeAndUser(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var createdEmployee *employee.Employee
	var createdUser *User

	employees := &fakeEmployeeRepo{}
	employees.createFn = func(ctx context.Context, e *employee.Employee) error {
		createdEmployee = e
		return nil
	}
	users := &fakeUserRepo{}
	users.createFn = func(ctx context.Context, u *User) error {
		createdUser = u
		return nil
	}

	svc := NewService(db, users, employees, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Register(context.Background(), RegisterRequest{
		FullName: "Test User",
		Email:    "  Test@Example.COM ",
		Password: "secret123",
		Role:     "EMPLOYEE",
	})

	assert.NoError(t, err)
	assert.Equal(t, "test@example.com", resp.Email)
	assert.Equal(t, "EMP-000001", resp.EmployeeNumber)

	assert.NotNil(t, createdEmployee)
	assert.NotNil(t, createdUser)
	assert.Equal(t, createdEmployee.ID, createdUser.EmployeeID)
	assert.NotEqual(t, "secret123", createdUser.Password, "password must be hashed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func loginFixture(role string, active bool) (*fakeUserRepo, *fakeEmployeeRepo) {
	employeeID := uuid.New()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)

	users := &fakeUserRepo{}
	users.findByEmailFn = func(ctx context.Context, email string) (*User, error) {
		return &User{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			Email:      email,
			Password:   string(hashed),
			IsActive:   active,
		}, nil
	}
	users.updateFn = func(ctx context.Context, u *User) error { return nil }

	employees := &fakeEmployeeRepo{}
	employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		return &employee.Employee{ID: employeeID, Role: role}, nil
	}
	return users, employees
}

func TestService_Login_Success(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	users, employees := loginFixture("EMPLOYEE", true)
	svc := NewService(db, users, employees, &fakeCounter{})

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "test@example.com",
		Password: "secret123",
		Role:     "EMPLOYEE",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(AccessTokenTTL/time.Second), resp.ExpiresIn)
}

func TestService_Login_WrongPassword(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	users, employees := loginFixture("EMPLOYEE", true)
	svc := NewService(db, users, employees, &fakeCounter{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "test@example.com",
		Password: "wrong-password",
		Role:     "EMPLOYEE",
	})
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Login_RoleMismatch(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	users, employees := loginFixture("EMPLOYEE", true)
	svc := NewService(db, users, employees, &fakeCounter{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "test@example.com",
		Password: "secret123",
		Role:     "ADMIN",
	})
	assert.ErrorIs(t, err, autherrors.ErrRoleMismatch)
}

func TestService_Login_DisabledAccount(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	users, employees := loginFixture("EMPLOYEE", false)
	svc := NewService(db, users, employees, &fakeCounter{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "test@example.com",
		Password: "secret123",
		Role:     "EMPLOYEE",
	})
	assert.ErrorIs(t, err, autherrors.ErrAccountDisabled)
}

func TestService_Refresh_RejectsAccessToken(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	users, employees := loginFixture("EMPLOYEE", true)
	svc := NewService(db, users, employees, &fakeCounter{})

	tokens, err := svc.Login(context.Background(), LoginRequest{
		Email:    "test@example.com",
		Password: "secret123",
		Role:     "EMPLOYEE",
	})
	assert.NoError(t, err)

	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestService_Refresh_IssuesNewTokens(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	users, employees := loginFixture("EMPLOYEE", true)
	users.findByIDFn = func(ctx context.Context, id string) (*User, error) {
		return &User{ID: uuid.New(), EmployeeID: uuid.New(), IsActive: true}, nil
	}
	svc := NewService(db, users, employees, &fakeCounter{})

	tokens, err := svc.Login(context.Background(), LoginRequest{
		Email:    "test@example.com",
		Password: "secret123",
		Role:     "EMPLOYEE",
	})
	assert.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: tokens.RefreshToken})
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestService_Me_ReturnsProfile(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	userID := uuid.New()
	employeeID := uuid.New()

	users := &fakeUserRepo{}
	users.findByIDFn = func(ctx context.Context, id string) (*User, error) {
		return &User{ID: userID, EmployeeID: employeeID, Email: "test@example.com", IsActive: true}, nil
	}
	employees := &fakeEmployeeRepo{}
	employees.findByIDFn = func(ctx context.Context, id string) (*employee.Employee, error) {
		return &employee.Employee{
			ID:             employeeID,
			EmployeeNumber: "EMP-000001",
			FullName:       "Test User",
			Role:           "EMPLOYEE",
		}, nil
	}

	svc := NewService(db, users, employees, &fakeCounter{})
	resp, err := svc.Me(context.Background(), userID.String())

	assert.NoError(t, err)
	assert.Equal(t, userID.String(), resp.UserID)
	assert.Equal(t, employeeID.String(), resp.EmployeeID)
	assert.Equal(t, "EMP-000001", resp.EmployeeNumber)
	assert.Equal(t, "EMPLOYEE", resp.Role)
}

func TestService_Me_DisabledAccount(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	users := &fakeUserRepo{}
	users.findByIDFn = func(ctx context.Context, id string) (*User, error) {
		return &User{ID: uuid.New(), EmployeeID: uuid.New(), IsActive: false}, nil
	}

	svc := NewService(db, users, &fakeEmployeeRepo{}, &fakeCounter{})
	_, err := svc.Me(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, autherrors.ErrAccountDisabled)
}
