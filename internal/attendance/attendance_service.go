package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-attendly/internal/attendance/errors"
	"go-attendly/internal/shared/fallback"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const fallbackEntity = "attendance_records"

type Service interface {
	CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)
	StartBreak(ctx context.Context, employeeID string) (AttendanceResponse, error)
	EndBreak(ctx context.Context, employeeID string) (AttendanceResponse, error)
	GetToday(ctx context.Context, employeeID string) (AttendanceResponse, error)
	GetAll(ctx context.Context, actorID string, canReadAll bool) ([]AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	fb     fallback.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, fb fallback.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, fb: fb, logger: l, now: time.Now}
}

func (s *service) CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := s.now()
	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     employeeUUID,
		AttendanceDate: dateOnly(now),
		CheckIn:        now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-in begin tx failed", zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, row.AttendanceDate)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check-in lookup failed", zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}
	if err == nil && existing != nil && existing.ID != uuid.Nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("check-in persist failed", zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("check-in commit failed", zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}

	s.logger.Info("check-in success",
		zap.String("employee_id", employeeID),
		zap.String("attendance_id", row.ID.String()),
	)
	return s.mapToResponse(*row), nil
}

func (s *service) StartBreak(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	return s.transition(ctx, employeeID, "start break", func(row *Attendance, now time.Time) error {
		if row.CheckOut != nil {
			return attendanceerrors.ErrAlreadyCheckedOut
		}
		if row.IsOnBreak {
			return attendanceerrors.ErrAlreadyOnBreak
		}
		if row.HasUsedBreak {
			return attendanceerrors.ErrBreakAlreadyUsed
		}

		start := now
		row.BreakStart = &start
		row.IsOnBreak = true
		// Jatah break harian terpakai saat break dimulai, bukan saat selesai.
		row.HasUsedBreak = true
		return nil
	})
}

func (s *service) EndBreak(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	return s.transition(ctx, employeeID, "end break", func(row *Attendance, now time.Time) error {
		if !row.IsOnBreak || row.BreakStart == nil {
			return attendanceerrors.ErrNotOnBreak
		}

		row.TotalBreakMinutes += breakMinutes(*row.BreakStart, now)
		row.IsOnBreak = false
		row.BreakStart = nil
		return nil
	})
}

func (s *service) CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	return s.transition(ctx, employeeID, "check-out", func(row *Attendance, now time.Time) error {
		if row.CheckOut != nil {
			return attendanceerrors.ErrAlreadyCheckedOut
		}

		// Break yang masih terbuka ditutup dulu sebelum hitung jam final.
		if row.IsOnBreak && row.BreakStart != nil {
			row.TotalBreakMinutes += breakMinutes(*row.BreakStart, now)
			row.IsOnBreak = false
			row.BreakStart = nil
		}

		out := now
		row.CheckOut = &out
		row.HoursWorked = hoursWorked(row.CheckIn, out, row.TotalBreakMinutes)
		return nil
	})
}

// transition memuat record hari ini, menjalankan guard+mutasi, lalu menyimpan.
// Guard violation dikembalikan sebagai error tanpa mengubah state tersimpan.
func (s *service) transition(
	ctx context.Context,
	employeeID string,
	op string,
	apply func(row *Attendance, now time.Time) error,
) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := s.now()
	today := dateOnly(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error(op+" begin tx failed", zap.Error(err))
		return s.transitionViaFallback(ctx, employeeID, today, now, apply)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoCheckIn
		}
		s.logger.Error(op+" lookup failed", zap.Error(err))
		return s.transitionViaFallback(ctx, employeeID, today, now, apply)
	}

	if err := apply(row, now); err != nil {
		return AttendanceResponse{}, err
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error(op+" persist failed", zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error(op+" commit failed", zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}

	s.logger.Info(op+" success",
		zap.String("employee_id", employeeID),
		zap.String("attendance_id", row.ID.String()),
	)
	return s.mapToResponse(*row), nil
}

// transitionViaFallback menjalankan transisi terhadap record hari ini di
// fallback store saat primary DB tidak bisa dibaca.
func (s *service) transitionViaFallback(
	ctx context.Context,
	employeeID string,
	today, now time.Time,
	apply func(row *Attendance, now time.Time) error,
) (AttendanceResponse, error) {
	key := fallback.Key(fallbackEntity, employeeID)

	var rows []Attendance
	if err := s.fb.List(ctx, key, &rows); err != nil {
		s.logger.Error("fallback read failed", zap.String("key", key), zap.Error(err))
		return AttendanceResponse{}, attendanceerrors.ErrNoCheckIn
	}

	idx := -1
	for i := range rows {
		if dateOnly(rows[i].AttendanceDate).Equal(today) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return AttendanceResponse{}, attendanceerrors.ErrNoCheckIn
	}

	row := rows[idx]
	if err := apply(&row, now); err != nil {
		return AttendanceResponse{}, err
	}
	rows[idx] = row

	if err := s.fb.Save(ctx, key, rows); err != nil {
		s.logger.Error("fallback save failed", zap.String("key", key), zap.Error(err))
	}

	resp := s.mapToResponse(row)
	resp.PendingSync = true
	return resp, nil
}

// fallbackWrite menulis record ke fallback store (key per-employee dan
// key admin-wide) dan tetap melaporkan sukses. Pilihan produk: UI tidak
// boleh terblokir saat backend utama mati; divergensi dicatat di log.
func (s *service) fallbackWrite(ctx context.Context, row *Attendance) AttendanceResponse {
	employeeID := row.EmployeeID.String()
	s.logger.Warn("primary store unavailable, writing attendance to fallback",
		zap.String("employee_id", employeeID),
		zap.String("attendance_id", row.ID.String()),
	)

	if err := s.fb.Append(ctx, fallback.Key(fallbackEntity, employeeID), row); err != nil {
		s.logger.Error("fallback append failed", zap.Error(err))
	}
	if err := s.fb.Append(ctx, fallback.AllKey(fallbackEntity), row); err != nil {
		s.logger.Error("fallback append (all) failed", zap.Error(err))
	}

	resp := s.mapToResponse(*row)
	resp.PendingSync = true
	return resp
}

func (s *service) GetToday(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := s.now()
	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, dateOnly(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		s.logger.Error("get today lookup failed", zap.Error(err))

		var rows []Attendance
		if fbErr := s.fb.List(ctx, fallback.Key(fallbackEntity, employeeID), &rows); fbErr == nil {
			for i := range rows {
				if dateOnly(rows[i].AttendanceDate).Equal(dateOnly(now)) {
					return s.liveResponse(rows[i], now), nil
				}
			}
		}
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
	}

	return s.liveResponse(*row, now), nil
}

// liveResponse melampirkan hours_so_far untuk record yang belum check-out:
// formula yang sama dengan check-out, dengan "now" sebagai pengganti.
// Break yang sedang berjalan ikut dihitung. Nilai ini tidak dipersist.
func (s *service) liveResponse(row Attendance, now time.Time) AttendanceResponse {
	resp := s.mapToResponse(row)
	if row.CheckOut == nil {
		breakMin := row.TotalBreakMinutes
		if row.IsOnBreak && row.BreakStart != nil {
			breakMin += breakMinutes(*row.BreakStart, now)
		}
		soFar := hoursWorked(row.CheckIn, now, breakMin)
		resp.HoursSoFar = &soFar
	}
	return resp
}

func (s *service) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil && !canReadAll {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}

	var (
		rows []Attendance
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindAll(ctx)
	} else {
		rows, err = s.repo.FindAllByEmployee(ctx, actorID)
	}
	if err != nil {
		s.logger.Error("get all lookup failed, reading fallback", zap.Error(err))
		key := fallback.Key(fallbackEntity, actorID)
		if canReadAll {
			key = fallback.AllKey(fallbackEntity)
		}
		rows = nil
		if fbErr := s.fb.List(ctx, key, &rows); fbErr != nil {
			s.logger.Error("fallback read failed", zap.String("key", key), zap.Error(fbErr))
		}
	}

	resp := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		resp[i] = s.mapToResponse(r)
	}
	return resp, nil
}

func (s *service) mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                a.ID.String(),
		EmployeeID:        a.EmployeeID.String(),
		AttendanceDate:    a.AttendanceDate.Format("2006-01-02"),
		CheckIn:           a.CheckIn.Format(time.RFC3339),
		HoursWorked:       a.HoursWorked,
		TotalBreakMinutes: a.TotalBreakMinutes,
		IsOnBreak:         a.IsOnBreak,
		HasUsedBreak:      a.HasUsedBreak,
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	if a.BreakStart != nil {
		v := a.BreakStart.Format(time.RFC3339)
		resp.BreakStart = &v
	}
	return resp
}
