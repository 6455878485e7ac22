package employee

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	employeeerrors "go-attendly/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn       func(ctx context.Context, e *Employee) error
	findAllFn      func(ctx context.Context) ([]Employee, error)
	findOptionsFn  func(ctx context.Context) ([]Employee, error)
	findByIDFn     func(ctx context.Context, id string) (*Employee, error)
	findByEmailFn  func(ctx context.Context, email string) (*Employee, error)
	findAdminIDsFn func(ctx context.Context) ([]string, error)
	updateFn       func(ctx context.Context, e *Employee) error
	deleteFn       func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository               { return f }
func (f *fakeRepo) Create(ctx context.Context, e *Employee) error { return f.createFn(ctx, e) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindOptions(ctx context.Context) ([]Employee, error) {
	return f.findOptionsFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	return f.findByEmailFn(ctx, email)
}
func (f *fakeRepo) FindAdminIDs(ctx context.Context) ([]string, error) {
	return f.findAdminIDsFn(ctx)
}
func (f *fakeRepo) Update(ctx context.Context, e *Employee) error { return f.updateFn(ctx, e) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error   { return f.deleteFn(ctx, id) }

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

func strPtr(s string) *string { return &s }

func TestService_Create_GeneratesEmployeeNumber(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved *Employee
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, e *Employee) error {
		saved = e
		return nil
	}

	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName: "Test User",
		Email:    "  Test@Example.COM ",
		Role:     RoleEmployee,
	})

	assert.NoError(t, err)
	assert.Equal(t, "EMP-000001", saved.EmployeeNumber)
	assert.Equal(t, "test@example.com", saved.Email, "email must be normalized")
	assert.Equal(t, saved.ID.String(), resp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_InvalidPhone(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCounter{}, nil)
	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName: "Test User",
		Email:    "test@example.com",
		Role:     RoleEmployee,
		Phone:    strPtr("12"),
	})
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidPhone)
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, e *Employee) error {
		return errors.New(`ERROR: duplicate key value violates unique constraint "idx_employees_email"`)
	}

	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FullName: "Test User",
		Email:    "test@example.com",
		Role:     RoleEmployee,
	})
	assert.ErrorIs(t, err, employeeerrors.ErrDuplicateEmail)
}

func TestService_UpdateProfile_SelfOrAdminOnly(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	owner := uuid.New().String()
	other := uuid.New().String()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Employee, error) {
		return &Employee{ID: uuid.MustParse(owner), FullName: "Old Name"}, nil
	}
	repo.updateFn = func(ctx context.Context, e *Employee) error { return nil }

	svc := NewService(db, repo, &fakeCounter{}, nil)

	_, err := svc.UpdateProfile(context.Background(), other, RoleEmployee, owner, UpdateProfileRequest{
		FullName: "New Name",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrNotProfileOwner)

	resp, err := svc.UpdateProfile(context.Background(), owner, RoleEmployee, owner, UpdateProfileRequest{
		FullName: "New Name",
	})
	assert.NoError(t, err)
	assert.Equal(t, "New Name", resp.FullName)

	// Admin boleh mengubah profil siapa pun
	_, err = svc.UpdateProfile(context.Background(), other, RoleAdmin, owner, UpdateProfileRequest{
		FullName: "Another Name",
	})
	assert.NoError(t, err)
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, &fakeCounter{}, nil)
	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}
