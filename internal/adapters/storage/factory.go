package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/summit-resolutions/internal/config"
	"github.com/comitanigiacomo/summit-resolutions/internal/core/domain"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Open builds the backend named by cfg.StorageDriver. The returned close
// func releases backend resources; it never closes rdb, which the caller owns.
func Open(ctx context.Context, cfg *config.Config, rdb *redis.Client) (domain.KVStorage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.StorageFile:
		fs, err := NewFileStorage(filepath.Clean(cfg.DataDir))
		if err != nil {
			return nil, nil, err
		}
		return fs, noop, nil

	case config.StorageMemory:
		return NewInMemoryStorage(), noop, nil

	case config.StorageRedis:
		if rdb == nil {
			return nil, nil, fmt.Errorf("redis storage requires a redis client")
		}
		return NewRedisStorage(rdb, cfg.RedisKeyPrefix), noop, nil

	case config.StorageSQL:
		s, err := OpenSQLStorage(ctx, cfg.DBDriver, cfg.DBConnection)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sql storage: %w", err)
		}
		return s, s.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StorageDriver)
	}
}
