package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-attendly/internal/events"
	leaveerrors "go-attendly/internal/leave/errors"
	"go-attendly/internal/messaging/kafka"
	"go-attendly/internal/shared/contextutil"
	"go-attendly/internal/shared/fallback"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const fallbackEntity = "leave_requests"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actorID string, canReadAll bool, id string) (LeaveResponse, error)
	Approve(ctx context.Context, reviewerID, id string, comment *string) (LeaveResponse, error)
	Reject(ctx context.Context, reviewerID, id, comment string) (LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	fb     fallback.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, fb fallback.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, fb: fb, logger: l, now: time.Now}
}

func parseDate(s string) (time.Time, error) {
	// Tanggal diparse di timezone lokal supaya tidak bergeser sehari.
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// totalDays menghitung hari kalender inklusif. Jangan pakai pembagian
// durasi: hari dengan transisi DST panjangnya bukan 24 jam.
func totalDays(start, end time.Time) int {
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	if end.Before(start) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	now := s.now()
	row := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		LeaveType:  req.LeaveType,
		StartDate:  start,
		EndDate:    end,
		TotalDays:  totalDays(start, end),
		Reason:     req.Reason,
		Status:     StatusPending,
		AppliedAt:  now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlaps, err := qtx.HasOverlappingPeriod(ctx, employeeID, start, end)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.String("request_id", rid), zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}
	if overlaps {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}

	if err := s.enqueueRequested(ctx, tx, rid, row); err != nil {
		s.logger.Error("create leave outbox failed", zap.String("request_id", rid), zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}

	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", row.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*row), nil
}

func (s *service) enqueueRequested(ctx context.Context, tx *sql.Tx, rid string, row *LeaveRequest) error {
	payload, err := json.Marshal(events.LeaveRequestedEvent{
		EventType:  "leave.requested",
		RequestID:  rid,
		LeaveID:    row.ID.String(),
		EmployeeID: row.EmployeeID.String(),
		LeaveType:  row.LeaveType,
		StartDate:  row.StartDate.Format("2006-01-02"),
		EndDate:    row.EndDate.Format("2006-01-02"),
		OccurredAt: row.AppliedAt,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave_request",
		AggregateID:   row.ID.String(),
		EventType:     "leave.requested",
		Topic:         events.LeaveRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil && !canReadAll {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}

	var (
		rows []LeaveRequest
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindAll(ctx)
	} else {
		rows, err = s.repo.FindAllByEmployee(ctx, actorID)
	}
	if err != nil {
		s.logger.Error("get all leaves failed, reading fallback", zap.Error(err))
		key := fallback.Key(fallbackEntity, actorID)
		if canReadAll {
			key = fallback.AllKey(fallbackEntity)
		}
		rows = nil
		if fbErr := s.fb.List(ctx, key, &rows); fbErr != nil {
			s.logger.Error("fallback read failed", zap.String("key", key), zap.Error(fbErr))
		}
	}

	resp := make([]LeaveResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actorID string, canReadAll bool, id string) (LeaveResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("get leave by id failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if !canReadAll && row.EmployeeID.String() != actorID {
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}
	return mapToResponse(*row), nil
}

func (s *service) Approve(ctx context.Context, reviewerID, id string, comment *string) (LeaveResponse, error) {
	return s.review(ctx, reviewerID, id, StatusApproved, comment)
}

func (s *service) Reject(ctx context.Context, reviewerID, id, comment string) (LeaveResponse, error) {
	if comment == "" {
		return LeaveResponse{}, leaveerrors.ErrCommentRequired
	}
	return s.review(ctx, reviewerID, id, StatusRejected, &comment)
}

// review memindahkan request dari PENDING ke status final dan menulis satu
// event reviewed ke outbox dalam transaksi yang sama. Request yang sudah
// direview tidak bisa direview ulang.
func (s *service) review(ctx context.Context, reviewerID, id, status string, comment *string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidReviewerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("review leave lookup failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	if row.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrAlreadyReviewed
	}

	now := s.now()
	row.Status = status
	row.ReviewedBy = &reviewerUUID
	row.ReviewedAt = &now
	row.ReviewerComment = comment

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("review leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	payload, err := json.Marshal(events.LeaveReviewedEvent{
		EventType:       "leave.reviewed",
		RequestID:       rid,
		LeaveID:         row.ID.String(),
		EmployeeID:      row.EmployeeID.String(),
		ReviewerID:      reviewerID,
		Status:          status,
		ReviewerComment: comment,
		OccurredAt:      now,
	})
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave_request",
		AggregateID:   row.ID.String(),
		EventType:     "leave.reviewed",
		Topic:         events.LeaveReviewedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("review leave outbox failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("review leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", row.ID.String()),
		zap.String("status", status),
	)
	return mapToResponse(*row), nil
}

// fallbackWrite menyimpan request ke fallback store saat primary DB mati.
// Request tetap dilaporkan sukses dengan pending_sync=true; event outbox
// menyusul saat data disinkronkan kembali.
func (s *service) fallbackWrite(ctx context.Context, row *LeaveRequest) LeaveResponse {
	employeeID := row.EmployeeID.String()
	s.logger.Warn("primary store unavailable, writing leave request to fallback",
		zap.String("employee_id", employeeID),
		zap.String("leave_id", row.ID.String()),
	)

	if err := s.fb.Append(ctx, fallback.Key(fallbackEntity, employeeID), row); err != nil {
		s.logger.Error("fallback append failed", zap.Error(err))
	}
	if err := s.fb.Append(ctx, fallback.AllKey(fallbackEntity), row); err != nil {
		s.logger.Error("fallback append (all) failed", zap.Error(err))
	}

	resp := mapToResponse(*row)
	resp.PendingSync = true
	return resp
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		TotalDays:  l.TotalDays,
		Reason:     l.Reason,
		Status:     l.Status,
		AppliedAt:  l.AppliedAt.Format(time.RFC3339),
	}
	if l.ReviewedBy != nil {
		v := l.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	resp.ReviewerComment = l.ReviewerComment
	return resp
}
