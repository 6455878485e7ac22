package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	holidayerrors "go-attendly/internal/holiday/errors"
	"go-attendly/internal/shared/apperror"
	"go-attendly/internal/shared/fallback"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const fallbackEntity = "holidays"

func yearCacheKey(year int) string {
	return fmt.Sprintf("holidays:year:%d", year)
}

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateHolidayRequest) (HolidayResponse, error)
	GetAll(ctx context.Context) ([]HolidayResponse, error)
	GetByYear(ctx context.Context, year int) ([]HolidayResponse, error)
	GetByDate(ctx context.Context, dateStr string) (HolidayResponse, error)
	Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	fb     fallback.Store
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, fb fallback.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, rdb: rdb, fb: fb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateHolidayRequest) (HolidayResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidActorID
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidDateFormat
	}

	row := &Holiday{
		ID:          uuid.New(),
		Name:        req.Name,
		Date:        date,
		HolidayType: req.HolidayType,
		Description: req.Description,
		IsOptional:  req.IsOptional,
		CreatedBy:   actorUUID,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		// Tanggal duplikat adalah penolakan validasi, bukan alasan fallback
		mapped := mapRepositoryError(err)
		var appErr *apperror.AppError
		if errors.As(mapped, &appErr) {
			return HolidayResponse{}, mapped
		}
		s.logger.Error("create holiday persist failed", zap.Error(err))
		return s.fallbackWrite(ctx, row), nil
	}

	s.invalidateYearCache(ctx, date.Year())
	s.logger.Info("create holiday success",
		zap.String("holiday_id", row.ID.String()),
		zap.String("date", req.Date),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context) ([]HolidayResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all holidays failed, reading fallback", zap.Error(err))
		rows = nil
		if fbErr := s.fb.List(ctx, fallback.AllKey(fallbackEntity), &rows); fbErr != nil {
			s.logger.Error("fallback read failed", zap.Error(fbErr))
		}
	}
	return mapToListResponse(rows), nil
}

// GetByYear dibaca berulang kali oleh resolver kalender, jadi ditaruh
// di cache Redis per tahun dengan singleflight untuk meredam burst.
func (s *service) GetByYear(ctx context.Context, year int) ([]HolidayResponse, error) {
	key := yearCacheKey(year)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp []HolidayResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		rows, err := s.repo.FindByYear(ctx, year)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(rows)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, key, jsonData, 12*time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get holidays by year failed, reading fallback",
			zap.Int("year", year),
			zap.Error(err),
		)
		var rows []Holiday
		if fbErr := s.fb.List(ctx, fallback.AllKey(fallbackEntity), &rows); fbErr != nil {
			s.logger.Error("fallback read failed", zap.Error(fbErr))
			return nil, nil
		}
		filtered := rows[:0]
		for _, h := range rows {
			if h.Date.Year() == year {
				filtered = append(filtered, h)
			}
		}
		return mapToListResponse(filtered), nil
	}

	return v.([]HolidayResponse), nil
}

func (s *service) GetByDate(ctx context.Context, dateStr string) (HolidayResponse, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidDateFormat
	}

	row, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return HolidayResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayID
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return HolidayResponse{}, mapRepositoryError(err)
	}

	row.Name = req.Name
	row.HolidayType = req.HolidayType
	row.Description = req.Description
	row.IsOptional = req.IsOptional

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("update holiday persist failed", zap.Error(err))
		return HolidayResponse{}, mapRepositoryError(err)
	}

	s.invalidateYearCache(ctx, row.Date.Year())
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return holidayerrors.ErrInvalidHolidayID
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	s.invalidateYearCache(ctx, row.Date.Year())
	return nil
}

// fallbackWrite menyimpan holiday ke fallback store saat primary DB mati.
// Caller tetap mendapat sukses dengan pending_sync=true.
func (s *service) fallbackWrite(ctx context.Context, row *Holiday) HolidayResponse {
	s.logger.Warn("primary store unavailable, writing holiday to fallback",
		zap.String("holiday_id", row.ID.String()),
		zap.String("date", row.Date.Format("2006-01-02")),
	)

	if err := s.fb.Append(ctx, fallback.Key(fallbackEntity, row.CreatedBy.String()), row); err != nil {
		s.logger.Error("fallback append failed", zap.Error(err))
	}
	if err := s.fb.Append(ctx, fallback.AllKey(fallbackEntity), row); err != nil {
		s.logger.Error("fallback append (all) failed", zap.Error(err))
	}

	resp := mapToResponse(*row)
	resp.PendingSync = true
	return resp
}

func (s *service) invalidateYearCache(ctx context.Context, year int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, yearCacheKey(year)).Err(); err != nil {
		s.logger.Warn("holiday cache invalidation failed", zap.Int("year", year), zap.Error(err))
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return holidayerrors.ErrHolidayNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return holidayerrors.ErrDuplicateDate
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return holidayerrors.ErrDuplicateDate
	}
	return err
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID.String(),
		Name:        h.Name,
		Date:        h.Date.Format("2006-01-02"),
		HolidayType: h.HolidayType,
		Description: h.Description,
		IsOptional:  h.IsOptional,
		CreatedBy:   h.CreatedBy.String(),
	}
}

func mapToListResponse(rows []Holiday) []HolidayResponse {
	resp := make([]HolidayResponse, len(rows))
	for i, h := range rows {
		resp[i] = mapToResponse(h)
	}
	return resp
}
