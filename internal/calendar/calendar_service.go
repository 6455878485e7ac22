package calendar

import (
	"context"
	"errors"
	"time"

	"go-attendly/internal/attendance"
	calendarerrors "go-attendly/internal/calendar/errors"
	"go-attendly/internal/compoff"
	"go-attendly/internal/holiday"
	"go-attendly/internal/leave"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Reader kecil per modul: resolver hanya butuh lookup satu tanggal,
// bukan seluruh repository.
type HolidayReader interface {
	FindByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error)
}

type LeaveReader interface {
	FindApprovedCovering(ctx context.Context, employeeID string, date time.Time) (*leave.LeaveRequest, error)
}

type CompOffReader interface {
	FindApprovedOn(ctx context.Context, employeeID string, date time.Time) (*compoff.CompOffRequest, error)
}

type AttendanceReader interface {
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error)
}

type DayStatusResponse struct {
	Date        string  `json:"date"`
	EmployeeID  string  `json:"employee_id"`
	Status      Status  `json:"status"`
	HolidayName *string `json:"holiday_name,omitempty"`
	LeaveType   *string `json:"leave_type,omitempty"`
	IsOptional  *bool   `json:"is_optional,omitempty"`
}

type Service interface {
	GetDayStatus(ctx context.Context, actorID string, canReadAll bool, employeeID, date string) (DayStatusResponse, error)
	GetMonth(ctx context.Context, actorID string, canReadAll bool, employeeID string, year, month int) ([]DayStatusResponse, error)
}

type service struct {
	holidays    HolidayReader
	leaves      LeaveReader
	compoffs    CompOffReader
	attendances AttendanceReader
	logger      *zap.Logger
	now         func() time.Time
}

func NewService(
	holidays HolidayReader,
	leaves LeaveReader,
	compoffs CompOffReader,
	attendances AttendanceReader,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("calendar.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.service")
	}
	return &service{
		holidays:    holidays,
		leaves:      leaves,
		compoffs:    compoffs,
		attendances: attendances,
		logger:      l,
		now:         time.Now,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *service) GetDayStatus(ctx context.Context, actorID string, canReadAll bool, employeeID, date string) (DayStatusResponse, error) {
	target, err := s.resolveTarget(actorID, canReadAll, employeeID)
	if err != nil {
		return DayStatusResponse{}, err
	}

	// Tanggal diparse di timezone lokal supaya tidak bergeser sehari.
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return DayStatusResponse{}, calendarerrors.ErrInvalidDateFormat
	}

	return s.resolveDay(ctx, target, day, dateOnly(s.now()))
}

func (s *service) GetMonth(ctx context.Context, actorID string, canReadAll bool, employeeID string, year, month int) ([]DayStatusResponse, error) {
	target, err := s.resolveTarget(actorID, canReadAll, employeeID)
	if err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, calendarerrors.ErrInvalidMonth
	}

	today := dateOnly(s.now())
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)

	var days []DayStatusResponse
	for d := first; d.Month() == time.Month(month); d = d.AddDate(0, 0, 1) {
		resp, err := s.resolveDay(ctx, target, d, today)
		if err != nil {
			return nil, err
		}
		days = append(days, resp)
	}
	return days, nil
}

func (s *service) resolveTarget(actorID string, canReadAll bool, employeeID string) (string, error) {
	target := employeeID
	if target == "" {
		target = actorID
	}
	if _, err := uuid.Parse(target); err != nil {
		return "", calendarerrors.ErrInvalidEmployeeID
	}
	if target != actorID && !canReadAll {
		return "", calendarerrors.ErrNotOwnCalendar
	}
	return target, nil
}

func (s *service) resolveDay(ctx context.Context, employeeID string, day, today time.Time) (DayStatusResponse, error) {
	resp := DayStatusResponse{
		Date:       day.Format("2006-01-02"),
		EmployeeID: employeeID,
	}
	var facts DayFacts

	h, err := s.holidays.FindByDate(ctx, day)
	switch {
	case err == nil:
		facts.IsHoliday = true
		resp.HolidayName = &h.Name
		resp.IsOptional = &h.IsOptional
	case !errors.Is(err, gorm.ErrRecordNotFound):
		s.logger.Error("holiday lookup failed", zap.Error(err))
		return DayStatusResponse{}, err
	}

	if _, err := s.compoffs.FindApprovedOn(ctx, employeeID, day); err == nil {
		facts.HasCompOff = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("comp-off lookup failed", zap.Error(err))
		return DayStatusResponse{}, err
	}

	l, err := s.leaves.FindApprovedCovering(ctx, employeeID, day)
	switch {
	case err == nil:
		facts.HasLeave = true
		resp.LeaveType = &l.LeaveType
	case !errors.Is(err, gorm.ErrRecordNotFound):
		s.logger.Error("leave lookup failed", zap.Error(err))
		return DayStatusResponse{}, err
	}

	if _, err := s.attendances.FindByEmployeeAndDate(ctx, employeeID, day); err == nil {
		facts.HasAttendance = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("attendance lookup failed", zap.Error(err))
		return DayStatusResponse{}, err
	}

	resp.Status = Resolve(day, today, facts)
	return resp, nil
}
