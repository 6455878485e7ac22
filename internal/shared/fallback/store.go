package fallback

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store adalah key-value fallback untuk menampung record saat primary DB
// tidak bisa diakses. Satu key menyimpan satu list JSON.
// Key scheme: "<entity>_<ownerID>" untuk list per employee,
// "all_<entity>" untuk list admin-wide.
//
type Store interface {
	List(ctx context.Context, key string, dest any) error
	Save(ctx context.Context, key string, records any) error
	Append(ctx context.Context, key string, record any) error
}

func Key(entity, ownerID string) string {
	return entity + "_" + ownerID
}

func AllKey(entity string) string {
	return "all_" + entity
}

type redisStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewStore(rdb *redis.Client, logger ...*zap.Logger) Store {
	l := zap.L().Named("fallback.store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("fallback.store")
	}
	return &redisStore{rdb: rdb, logger: l}
}

// List mengisi dest (pointer ke slice) dari key. Key yang tidak ada
// dianggap list kosong, bukan error.
func (s *redisStore) List(ctx context.Context, key string, dest any) error {
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return json.Unmarshal([]byte(raw), dest)
}

func (s *redisStore) Save(ctx context.Context, key string, records any) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, 0).Err()
}

// Append menambahkan satu record ke list pada key (read-modify-write).
func (s *redisStore) Append(ctx context.Context, key string, record any) error {
	var list []json.RawMessage
	if err := s.List(ctx, key, &list); err != nil {
		s.logger.Warn("fallback list read failed, starting fresh list",
			zap.String("key", key),
			zap.Error(err),
		)
		list = nil
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	list = append(list, payload)

	return s.Save(ctx, key, list)
}
