package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	attendanceerrors "go-attendly/internal/attendance/errors"
	"go-attendly/internal/shared/fallback"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                func(tx *sql.Tx) Repository
	createFn                func(ctx context.Context, a *Attendance) error
	findByEmployeeAndDateFn func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	findAllByEmployeeFn     func(ctx context.Context, employeeID string) ([]Attendance, error)
	findAllFn               func(ctx context.Context) ([]Attendance, error)
	updateFn                func(ctx context.Context, a *Attendance) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                    { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error { return f.createFn(ctx, a) }
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDateFn(ctx, employeeID, date)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error) {
	return f.findAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Attendance, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error   { return f.updateFn(ctx, a) }

type fakeStore struct {
	data map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (f *fakeStore) List(ctx context.Context, key string, dest any) error {
	raw, ok := f.data[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeStore) Save(ctx context.Context, key string, records any) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeStore) Append(ctx context.Context, key string, record any) error {
	var list []json.RawMessage
	if err := f.List(ctx, key, &list); err != nil {
		return err
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return f.Save(ctx, key, append(list, json.RawMessage(raw)))
}

func newMemoryRepo() (*fakeRepo, *Attendance) {
	var saved *Attendance
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, a *Attendance) error {
		copied := *a
		saved = &copied
		return nil
	}
	repo.updateFn = func(ctx context.Context, a *Attendance) error {
		copied := *a
		saved = &copied
		return nil
	}
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
		if saved == nil {
			return nil, gorm.ErrRecordNotFound
		}
		copied := *saved
		return &copied, nil
	}
	repo.findAllByEmployeeFn = func(ctx context.Context, employeeID string) ([]Attendance, error) {
		if saved == nil {
			return nil, nil
		}
		return []Attendance{*saved}, nil
	}
	repo.findAllFn = func(ctx context.Context) ([]Attendance, error) {
		if saved == nil {
			return nil, nil
		}
		return []Attendance{*saved}, nil
	}
	return repo, saved
}

func TestService_FullDayScenario(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	ctx := context.Background()

	repo, _ := newMemoryRepo()
	svc := NewService(db, repo, newFakeStore()).(*service)

	clock := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return clock }

	// 09:00 check-in
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CheckIn(ctx, employeeID)
	assert.NoError(t, err)
	assert.False(t, resp.PendingSync)

	// 12:00 break start
	clock = time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err = svc.StartBreak(ctx, employeeID)
	assert.NoError(t, err)
	assert.True(t, resp.IsOnBreak)
	assert.True(t, resp.HasUsedBreak)

	// 12:30 break end
	clock = time.Date(2025, 3, 10, 12, 30, 0, 0, time.Local)
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err = svc.EndBreak(ctx, employeeID)
	assert.NoError(t, err)
	assert.False(t, resp.IsOnBreak)
	assert.Equal(t, 30, resp.TotalBreakMinutes)

	// 18:00 check-out
	clock = time.Date(2025, 3, 10, 18, 0, 0, 0, time.Local)
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err = svc.CheckOut(ctx, employeeID)
	assert.NoError(t, err)
	assert.NotNil(t, resp.CheckOut)
	assert.Equal(t, 30, resp.TotalBreakMinutes)
	assert.Equal(t, 8.5, resp.HoursWorked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_Duplicate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
		return &Attendance{ID: uuid.New()}, nil
	}

	svc := NewService(db, repo, newFakeStore())
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CheckIn(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckOut_WithoutCheckIn(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	updated := false
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
		return nil, gorm.ErrRecordNotFound
	}
	repo.updateFn = func(ctx context.Context, a *Attendance) error {
		updated = true
		return nil
	}

	svc := NewService(db, repo, newFakeStore())
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CheckOut(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, attendanceerrors.ErrNoCheckIn)
	assert.False(t, updated, "failed transition must not persist anything")
}

func TestService_ZeroDurationBreakStillConsumesBreak(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	ctx := context.Background()

	repo, _ := newMemoryRepo()
	svc := NewService(db, repo, newFakeStore()).(*service)

	clock := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return clock }

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.CheckIn(ctx, employeeID)
	assert.NoError(t, err)

	// Break dimulai dan diakhiri di detik yang sama
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.StartBreak(ctx, employeeID)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.EndBreak(ctx, employeeID)
	assert.NoError(t, err)
	assert.Equal(t, 0, resp.TotalBreakMinutes)
	assert.True(t, resp.HasUsedBreak)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.StartBreak(ctx, employeeID)
	assert.ErrorIs(t, err, attendanceerrors.ErrBreakAlreadyUsed)
}

func TestService_SecondBreakRejected(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	ctx := context.Background()

	repo, _ := newMemoryRepo()
	svc := NewService(db, repo, newFakeStore()).(*service)

	clock := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return clock }

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.CheckIn(ctx, employeeID)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.StartBreak(ctx, employeeID)
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.StartBreak(ctx, employeeID)
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyOnBreak)
}

func TestService_CheckOutClosesOpenBreak(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	ctx := context.Background()

	repo, _ := newMemoryRepo()
	svc := NewService(db, repo, newFakeStore()).(*service)

	clock := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return clock }

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.CheckIn(ctx, employeeID)
	assert.NoError(t, err)

	clock = time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.StartBreak(ctx, employeeID)
	assert.NoError(t, err)

	// Check-out tanpa menutup break: break dilipat dulu ke total
	clock = time.Date(2025, 3, 10, 13, 0, 0, 0, time.Local)
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CheckOut(ctx, employeeID)
	assert.NoError(t, err)
	assert.False(t, resp.IsOnBreak)
	assert.Equal(t, 60, resp.TotalBreakMinutes)
	assert.Equal(t, 3.0, resp.HoursWorked)
}

func TestService_CheckIn_FallbackOnPrimaryFailure(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	ctx := context.Background()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
		return nil, gorm.ErrRecordNotFound
	}
	repo.createFn = func(ctx context.Context, a *Attendance) error {
		return errors.New("connection refused")
	}

	store := newFakeStore()
	svc := NewService(db, repo, store)

	mock.ExpectBegin()
	mock.ExpectRollback()
	resp, err := svc.CheckIn(ctx, employeeID)

	// Kontrak dual-backend: caller tetap dapat sukses, ditandai pending_sync
	assert.NoError(t, err)
	assert.True(t, resp.PendingSync)
	assert.NotEmpty(t, resp.ID)

	var ownRows, allRows []Attendance
	assert.NoError(t, store.List(ctx, fallback.Key("attendance_records", employeeID), &ownRows))
	assert.NoError(t, store.List(ctx, fallback.AllKey("attendance_records"), &allRows))
	assert.Len(t, ownRows, 1)
	assert.Len(t, allRows, 1)
	assert.Equal(t, resp.ID, ownRows[0].ID.String())
	assert.Equal(t, resp.ID, allRows[0].ID.String())
}

func TestService_GetToday_LiveHours(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	checkIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	repo := &fakeRepo{}
	repo.findByEmployeeAndDateFn = func(ctx context.Context, id string, date time.Time) (*Attendance, error) {
		return &Attendance{
			ID:                uuid.New(),
			EmployeeID:        employeeID,
			AttendanceDate:    dateOnly(checkIn),
			CheckIn:           checkIn,
			TotalBreakMinutes: 30,
		}, nil
	}

	svc := NewService(db, repo, newFakeStore()).(*service)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 14, 0, 0, 0, time.Local) }

	resp, err := svc.GetToday(context.Background(), employeeID.String())
	assert.NoError(t, err)
	assert.NotNil(t, resp.HoursSoFar)
	assert.Equal(t, 4.5, *resp.HoursSoFar)
	assert.Equal(t, 0.0, resp.HoursWorked, "live hours are not persisted")
}
