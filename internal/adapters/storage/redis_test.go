package storage

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/summit-resolutions/internal/adapters/cache"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestRedisStorage_Integration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	rdb, err := cache.NewRedisClient(context.Background(), cache.Options{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       1,
	})
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer rdb.Close()

	require.NoError(t, rdb.FlushDB(context.Background()).Err(), "Failed to flush test DB")

	exerciseKV(t, NewRedisStorage(rdb, "summit-test:"))
}

func TestSQLStorage_PostgresIntegration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("Skipping Postgres integration test: TEST_POSTGRES_DSN not set")
	}

	for _, driver := range []string{"pgx", "postgres"} {
		t.Run(driver, func(t *testing.T) {
			s, err := OpenSQLStorage(context.Background(), driver, dsn)
			if err != nil {
				t.Skipf("Skipping Postgres integration test: %v", err)
			}
			defer s.Close()

			_, err = s.db.Exec("DELETE FROM kv_store")
			require.NoError(t, err)

			exerciseKV(t, s)
		})
	}
}
