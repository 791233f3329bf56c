package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/comitanigiacomo/summit-resolutions/internal/core/domain"
)

var _ domain.KVStorage = (*SQLStorage)(nil)

// SQLStorage keeps values in the kv_store table of any database/sql backend
// sqlx knows how to rebind for (sqlite, pgx, postgres).
type SQLStorage struct {
	db     *sqlx.DB
	driver string
}

func OpenSQLStorage(ctx context.Context, driver, connection string) (*SQLStorage, error) {
	if driver == "sqlite" {
		dir := filepath.Dir(connection)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sqlx.ConnectContext(ctx, driver, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := RunMigrations(db.DB, driver); err != nil {
		_ = db.Close()
		return nil, err
	}

	slog.Info("database connected", "driver", driver)

	return NewSQLStorage(db, driver), nil
}

func NewSQLStorage(db *sqlx.DB, driver string) *SQLStorage {
	return &SQLStorage{db: db, driver: driver}
}

func (s *SQLStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	query := s.db.Rebind(`SELECT value FROM kv_store WHERE storage_key = ?`)

	err := s.db.GetContext(ctx, &value, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("select %s: %w", key, err)
	}

	return []byte(value), nil
}

func (s *SQLStorage) Set(ctx context.Context, key string, value []byte) error {
	query := s.db.Rebind(`
		INSERT INTO kv_store (storage_key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (storage_key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at`)

	_, err := s.db.ExecContext(ctx, query, key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Migrate applies any pending schema migrations.
func (s *SQLStorage) Migrate() error {
	return RunMigrations(s.db.DB, s.driver)
}

// Rollback undoes the most recent schema migration.
func (s *SQLStorage) Rollback() error {
	return MigrateDown(s.db.DB, s.driver)
}

func (s *SQLStorage) SchemaVersion() (int64, error) {
	return SchemaVersion(s.db.DB, s.driver)
}

func (s *SQLStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
