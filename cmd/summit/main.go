// Command summit manages resolutions from the terminal against the same
// storage backends as the API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"

	"github.com/comitanigiacomo/summit-resolutions/internal/adapters/cache"
	"github.com/comitanigiacomo/summit-resolutions/internal/adapters/storage"
	"github.com/comitanigiacomo/summit-resolutions/internal/config"
	"github.com/comitanigiacomo/summit-resolutions/internal/core/services"
	"github.com/comitanigiacomo/summit-resolutions/internal/logger"
	"github.com/comitanigiacomo/summit-resolutions/internal/ui"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks bad command-line input, reported with exit status 2.
type usageError string

func (e usageError) Error() string { return string(e) }

var clock = time.Now

const usageText = `summit - track your resolutions

Usage:
  summit [global flags] <command> [flags] [args]

Commands:
  add <title>          create a goal (--type daily|monthly|anytime, --target, --notes, --due)
  list                 list goals with their current progress (--type, --json)
  check <id>           count one more for the current period
  uncheck <id>         count one less for the current period
  adjust <id> <delta>  change the current period count by delta
  show <id>            show a goal with its history and streaks
  rm <id>              delete a goal
  stats                completion summary for the current periods
  export               dump all goals (--format json|yaml)
  migrate [up|down]    apply or roll back one sql schema migration; no action prints the version

Ids may be shortened to any unique prefix.

Global flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.InitQuiet(os.Stderr)
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()

	global := pflag.NewFlagSet("summit", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(stderr)
	global.StringVar(&cfg.StorageDriver, "storage", cfg.StorageDriver, "storage backend: file, memory, redis or sql")
	global.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for the file backend")
	global.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "database/sql driver for the sql backend: sqlite, pgx or postgres")
	global.StringVar(&cfg.DBConnection, "db", cfg.DBConnection, "connection string for the sql backend")
	global.StringVar(&cfg.Timezone, "tz", cfg.Timezone, "time zone period keys are computed in")
	global.Usage = func() {
		fmt.Fprint(stderr, usageText)
		global.PrintDefaults()
	}

	if err := global.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if global.NArg() == 0 {
		global.Usage()
		return exitUsage
	}

	name, rest := global.Arg(0), global.Args()[1:]
	if name == "help" {
		global.Usage()
		return exitOK
	}

	if name == "migrate" {
		return exitCode(migrateCmd(ctx, cfg, rest, stdout), stderr)
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintln(stderr, ui.Error(fmt.Sprintf("unknown command %q", name)))
		global.Usage()
		return exitUsage
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Fprintln(stderr, ui.Error(err.Error()))
		return exitError
	}
	defer closeStore()

	env := &cmdEnv{ctx: ctx, store: store, out: stdout}
	return exitCode(cmd(env, rest), stderr)
}

// exitCode reports err on stderr and maps it to the process exit status.
func exitCode(err error, stderr io.Writer) int {
	var usage usageError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, pflag.ErrHelp):
		return exitOK
	case errors.As(err, &usage):
		fmt.Fprintln(stderr, ui.Error(usage.Error()))
		return exitUsage
	default:
		fmt.Fprintln(stderr, ui.Error(err.Error()))
		return exitError
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*services.GoalStore, func(), error) {
	var rdb *redis.Client
	if cfg.StorageDriver == config.StorageRedis {
		client, err := cache.NewRedisClient(ctx, cache.Options{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		rdb = client
	}

	kv, closeKV, err := storage.Open(ctx, cfg, rdb)
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, nil, err
	}

	closeAll := func() {
		_ = closeKV()
		if rdb != nil {
			_ = rdb.Close()
		}
	}

	store := services.NewGoalStore(kv,
		services.WithStorageKey(cfg.StorageKey),
		services.WithLocation(cfg.Location()),
		services.WithClock(clock),
	)
	if err := store.Load(ctx); err != nil {
		closeAll()
		return nil, nil, err
	}
	return store, closeAll, nil
}
