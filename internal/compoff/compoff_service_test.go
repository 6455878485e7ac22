package compoff

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	compofferrors "go-attendly/internal/compoff/errors"
	"go-attendly/internal/messaging/kafka"
	"go-attendly/internal/shared/fallback"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn             func(ctx context.Context, c *CompOffRequest) error
	findAllFn            func(ctx context.Context) ([]CompOffRequest, error)
	findAllByEmployeeFn  func(ctx context.Context, employeeID string) ([]CompOffRequest, error)
	findByIDFn           func(ctx context.Context, id string) (*CompOffRequest, error)
	updateFn             func(ctx context.Context, c *CompOffRequest) error
	hasApprovedLeaveOnFn func(ctx context.Context, employeeID string, date time.Time) (bool, error)
	findApprovedOnFn     func(ctx context.Context, employeeID string, date time.Time) (*CompOffRequest, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                        { return f }
func (f *fakeRepo) Create(ctx context.Context, c *CompOffRequest) error { return f.createFn(ctx, c) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]CompOffRequest, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]CompOffRequest, error) {
	return f.findAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*CompOffRequest, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, c *CompOffRequest) error { return f.updateFn(ctx, c) }
func (f *fakeRepo) HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	return f.hasApprovedLeaveOnFn(ctx, employeeID, date)
}
func (f *fakeRepo) FindApprovedOn(ctx context.Context, employeeID string, date time.Time) (*CompOffRequest, error) {
	return f.findApprovedOnFn(ctx, employeeID, date)
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error               { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, msg string) error { return nil }

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

func cleanRepo() *fakeRepo {
	repo := &fakeRepo{}
	repo.hasApprovedLeaveOnFn = func(ctx context.Context, employeeID string, date time.Time) (bool, error) {
		return false, nil
	}
	repo.createFn = func(ctx context.Context, c *CompOffRequest) error { return nil }
	return repo
}

func fixedClock(svc Service, t time.Time) {
	svc.(*service).now = func() time.Time { return t }
}

func TestService_Create_Success(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	outbox := &fakeOutbox{}
	svc := NewService(db, cleanRepo(), outbox, newFakeStore())
	fixedClock(svc, time.Date(2025, 7, 9, 10, 0, 0, 0, time.Local))

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), uuid.New().String(), CreateCompOffRequest{
		WorkDate:    "2025-07-06",
		CompOffDate: "2025-07-14",
		Reason:      "worked on release weekend",
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Len(t, outbox.events, 1)
	assert.Equal(t, "compoff.requested", outbox.events[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_WorkDateInFuture(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, cleanRepo(), &fakeOutbox{}, newFakeStore())
	fixedClock(svc, time.Date(2025, 7, 9, 10, 0, 0, 0, time.Local))

	_, err := svc.Create(context.Background(), uuid.New().String(), CreateCompOffRequest{
		WorkDate:    "2025-07-10",
		CompOffDate: "2025-07-14",
		Reason:      "not worked yet",
	})
	assert.ErrorIs(t, err, compofferrors.ErrWorkDateInFuture)
}

func TestService_Create_CompOffDateInPast(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, cleanRepo(), &fakeOutbox{}, newFakeStore())
	fixedClock(svc, time.Date(2025, 7, 9, 10, 0, 0, 0, time.Local))

	_, err := svc.Create(context.Background(), uuid.New().String(), CreateCompOffRequest{
		WorkDate:    "2025-07-06",
		CompOffDate: "2025-07-08",
		Reason:      "backdated",
	})
	assert.ErrorIs(t, err, compofferrors.ErrCompOffDateInPast)
}

func TestService_Create_WorkDateTodayAllowed(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, cleanRepo(), &fakeOutbox{}, newFakeStore())
	fixedClock(svc, time.Date(2025, 7, 9, 23, 30, 0, 0, time.Local))

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Create(context.Background(), uuid.New().String(), CreateCompOffRequest{
		WorkDate:    "2025-07-09",
		CompOffDate: "2025-07-09",
		Reason:      "same-day swap",
	})
	assert.NoError(t, err)
}

func TestService_Create_RejectedDuringApprovedLeave(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := cleanRepo()
	repo.hasApprovedLeaveOnFn = func(ctx context.Context, employeeID string, date time.Time) (bool, error) {
		return true, nil
	}

	outbox := &fakeOutbox{}
	svc := NewService(db, repo, outbox, newFakeStore())
	fixedClock(svc, time.Date(2025, 7, 9, 10, 0, 0, 0, time.Local))

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), uuid.New().String(), CreateCompOffRequest{
		WorkDate:    "2025-07-06",
		CompOffDate: "2025-07-14",
		Reason:      "already on leave that day",
	})
	assert.ErrorIs(t, err, compofferrors.ErrCompOffDuringLeave)
	assert.Empty(t, outbox.events)
}

func TestService_Create_FallbackOnPrimaryFailure(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New().String()
	repo := cleanRepo()
	repo.createFn = func(ctx context.Context, c *CompOffRequest) error {
		return errors.New("connection refused")
	}

	store := newFakeStore()
	svc := NewService(db, repo, &fakeOutbox{}, store)
	fixedClock(svc, time.Date(2025, 7, 9, 10, 0, 0, 0, time.Local))

	mock.ExpectBegin()
	mock.ExpectRollback()
	resp, err := svc.Create(context.Background(), employeeID, CreateCompOffRequest{
		WorkDate:    "2025-07-06",
		CompOffDate: "2025-07-14",
		Reason:      "release weekend",
	})

	assert.NoError(t, err)
	assert.True(t, resp.PendingSync)

	ctx := context.Background()
	var ownRows, allRows []CompOffRequest
	assert.NoError(t, store.List(ctx, fallback.Key("comp_off_requests", employeeID), &ownRows))
	assert.NoError(t, store.List(ctx, fallback.AllKey("comp_off_requests"), &allRows))
	assert.Len(t, ownRows, 1)
	assert.Len(t, allRows, 1)
	assert.Equal(t, resp.ID, ownRows[0].ID.String())
}

func TestService_Review_ExactlyOnce(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	stored := &CompOffRequest{
		ID:          uuid.New(),
		EmployeeID:  uuid.New(),
		WorkDate:    time.Date(2025, 7, 6, 0, 0, 0, 0, time.Local),
		CompOffDate: time.Date(2025, 7, 14, 0, 0, 0, 0, time.Local),
		Status:      StatusPending,
		AppliedAt:   time.Now(),
	}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*CompOffRequest, error) {
		copied := *stored
		return &copied, nil
	}
	repo.updateFn = func(ctx context.Context, c *CompOffRequest) error {
		copied := *c
		stored = &copied
		return nil
	}

	outbox := &fakeOutbox{}
	svc := NewService(db, repo, outbox, newFakeStore())
	reviewerID := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Reject(context.Background(), reviewerID, stored.ID.String(), "no evidence of weekend work")
	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, resp.Status)
	assert.NotNil(t, resp.ReviewerComment)
	assert.Len(t, outbox.events, 1)
	assert.Equal(t, "compoff.reviewed", outbox.events[0].EventType)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Approve(context.Background(), reviewerID, stored.ID.String(), nil)
	assert.ErrorIs(t, err, compofferrors.ErrAlreadyReviewed)
	assert.Len(t, outbox.events, 1)
}

func TestService_Review_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*CompOffRequest, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, &fakeOutbox{}, newFakeStore())

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Approve(context.Background(), uuid.New().String(), uuid.New().String(), nil)
	assert.ErrorIs(t, err, compofferrors.ErrCompOffNotFound)
}
