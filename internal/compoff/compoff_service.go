package compoff

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	compofferrors "go-attendly/internal/compoff/errors"
	"go-attendly/internal/events"
	"go-attendly/internal/messaging/kafka"
	"go-attendly/internal/shared/contextutil"
	"go-attendly/internal/shared/fallback"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const fallbackEntity = "comp_off_requests"

type Service interface {
	Create(ctx context.Context, employeeID string, req CreateCompOffRequest) (CompOffResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool) ([]CompOffResponse, error)
	GetByID(ctx context.Context, actorID string, canReadAll bool, id string) (CompOffResponse, error)
	Approve(ctx context.Context, reviewerID, id string, comment *string) (CompOffResponse, error)
	Reject(ctx context.Context, reviewerID, id, comment string) (CompOffResponse, error)
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
	l := zap.L().Named("compoff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("compoff.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, fb: fb, logger: l, now: time.Now}
}

func parseDate(s string) (time.Time, error) {
	// Tanggal diparse di timezone lokal supaya tidak bergeser sehari.
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateCompOffRequest) (CompOffResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return CompOffResponse{}, compofferrors.ErrInvalidEmployeeID
	}

	workDate, err := parseDate(req.WorkDate)
	if err != nil {
		return CompOffResponse{}, compofferrors.ErrInvalidDateFormat
	}
	compOffDate, err := parseDate(req.CompOffDate)
	if err != nil {
		return CompOffResponse{}, compofferrors.ErrInvalidDateFormat
	}

	today := dateOnly(s.now())
	if workDate.After(today) {
		return CompOffResponse{}, compofferrors.ErrWorkDateInFuture
	}
	if compOffDate.Before(today) {
		return CompOffResponse{}, compofferrors.ErrCompOffDateInPast
	}

	now := s.now()
	row := &CompOffRequest{
		ID:          uuid.New(),
		EmployeeID:  employeeUUID,
		WorkDate:    workDate,
		CompOffDate: compOffDate,
		Reason:      req.Reason,
		Status:      StatusPending,
		AppliedAt:   now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create comp-off begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	onLeave, err := qtx.HasApprovedLeaveOn(ctx, employeeID, compOffDate)
	if err != nil {
		s.logger.Error("create comp-off leave check failed", zap.String("request_id", rid), zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}
	if onLeave {
		return CompOffResponse{}, compofferrors.ErrCompOffDuringLeave
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create comp-off persist failed", zap.String("request_id", rid), zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}

	if err := s.enqueueRequested(ctx, tx, rid, row); err != nil {
		s.logger.Error("create comp-off outbox failed", zap.String("request_id", rid), zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create comp-off commit failed", zap.String("request_id", rid), zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}

	s.logger.Info("create comp-off success",
		zap.String("request_id", rid),
		zap.String("compoff_id", row.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*row), nil
}

func (s *service) enqueueRequested(ctx context.Context, tx *sql.Tx, rid string, row *CompOffRequest) error {
	payload, err := json.Marshal(events.CompOffRequestedEvent{
		EventType:   "compoff.requested",
		RequestID:   rid,
		CompOffID:   row.ID.String(),
		EmployeeID:  row.EmployeeID.String(),
		WorkDate:    row.WorkDate.Format("2006-01-02"),
		CompOffDate: row.CompOffDate.Format("2006-01-02"),
		OccurredAt:  row.AppliedAt,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "comp_off_request",
		AggregateID:   row.ID.String(),
		EventType:     "compoff.requested",
		Topic:         events.CompOffRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]CompOffResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil && !canReadAll {
		return nil, compofferrors.ErrInvalidEmployeeID
	}

	var (
		rows []CompOffRequest
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindAll(ctx)
	} else {
		rows, err = s.repo.FindAllByEmployee(ctx, actorID)
	}
	if err != nil {
		s.logger.Error("get all comp-offs failed, reading fallback", zap.Error(err))
		key := fallback.Key(fallbackEntity, actorID)
		if canReadAll {
			key = fallback.AllKey(fallbackEntity)
		}
		rows = nil
		if fbErr := s.fb.List(ctx, key, &rows); fbErr != nil {
			s.logger.Error("fallback read failed", zap.String("key", key), zap.Error(fbErr))
		}
	}

	resp := make([]CompOffResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actorID string, canReadAll bool, id string) (CompOffResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompOffResponse{}, compofferrors.ErrCompOffNotFound
		}
		s.logger.Error("get comp-off by id failed", zap.Error(err))
		return CompOffResponse{}, err
	}

	if !canReadAll && row.EmployeeID.String() != actorID {
		return CompOffResponse{}, compofferrors.ErrNotRequestOwner
	}
	return mapToResponse(*row), nil
}

func (s *service) Approve(ctx context.Context, reviewerID, id string, comment *string) (CompOffResponse, error) {
	return s.review(ctx, reviewerID, id, StatusApproved, comment)
}

func (s *service) Reject(ctx context.Context, reviewerID, id, comment string) (CompOffResponse, error) {
	if comment == "" {
		return CompOffResponse{}, compofferrors.ErrCommentRequired
	}
	return s.review(ctx, reviewerID, id, StatusRejected, &comment)
}

// review memindahkan request dari PENDING ke status final dan menulis satu
// event reviewed ke outbox dalam transaksi yang sama.
func (s *service) review(ctx context.Context, reviewerID, id, status string, comment *string) (CompOffResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return CompOffResponse{}, compofferrors.ErrInvalidReviewerID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review comp-off begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return CompOffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompOffResponse{}, compofferrors.ErrCompOffNotFound
		}
		s.logger.Error("review comp-off lookup failed", zap.String("request_id", rid), zap.Error(err))
		return CompOffResponse{}, err
	}
	if row.Status != StatusPending {
		return CompOffResponse{}, compofferrors.ErrAlreadyReviewed
	}

	now := s.now()
	row.Status = status
	row.ReviewedBy = &reviewerUUID
	row.ReviewedAt = &now
	row.ReviewerComment = comment

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("review comp-off persist failed", zap.String("request_id", rid), zap.Error(err))
		return CompOffResponse{}, err
	}

	payload, err := json.Marshal(events.CompOffReviewedEvent{
		EventType:       "compoff.reviewed",
		RequestID:       rid,
		CompOffID:       row.ID.String(),
		EmployeeID:      row.EmployeeID.String(),
		ReviewerID:      reviewerID,
		Status:          status,
		ReviewerComment: comment,
		OccurredAt:      now,
	})
	if err != nil {
		return CompOffResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "comp_off_request",
		AggregateID:   row.ID.String(),
		EventType:     "compoff.reviewed",
		Topic:         events.CompOffReviewedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("review comp-off outbox failed", zap.String("request_id", rid), zap.Error(err))
		return CompOffResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review comp-off commit failed", zap.String("request_id", rid), zap.Error(err))
		return CompOffResponse{}, err
	}

	s.logger.Info("review comp-off success",
		zap.String("request_id", rid),
		zap.String("compoff_id", row.ID.String()),
		zap.String("status", status),
	)
	return mapToResponse(*row), nil
}

// fallbackWrite menyimpan request ke fallback store saat primary DB mati.
func (s *service) fallbackWrite(ctx context.Context, row *CompOffRequest) CompOffResponse {
	employeeID := row.EmployeeID.String()
	s.logger.Warn("primary store unavailable, writing comp-off request to fallback",
		zap.String("employee_id", employeeID),
		zap.String("compoff_id", row.ID.String()),
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

func mapToResponse(c CompOffRequest) CompOffResponse {
	resp := CompOffResponse{
		ID:          c.ID.String(),
		EmployeeID:  c.EmployeeID.String(),
		WorkDate:    c.WorkDate.Format("2006-01-02"),
		CompOffDate: c.CompOffDate.Format("2006-01-02"),
		Reason:      c.Reason,
		Status:      c.Status,
		AppliedAt:   c.AppliedAt.Format(time.RFC3339),
	}
	if c.ReviewedBy != nil {
		v := c.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if c.ReviewedAt != nil {
		v := c.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	resp.ReviewerComment = c.ReviewerComment
	return resp
}
