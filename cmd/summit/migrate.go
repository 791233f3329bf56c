package main

import (
	"context"
	"fmt"
	"io"

	"github.com/comitanigiacomo/summit-resolutions/internal/adapters/storage"
	"github.com/comitanigiacomo/summit-resolutions/internal/config"
	"github.com/comitanigiacomo/summit-resolutions/internal/ui"
)

// migrateCmd manages the sql backend's schema. It talks to the database
// directly and never loads goals.
func migrateCmd(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	action := "status"
	switch len(args) {
	case 0:
	case 1:
		action = args[0]
	default:
		return usageError("usage: summit migrate [up|down|status]")
	}
	if action != "up" && action != "down" && action != "status" {
		return usageError(fmt.Sprintf("unknown migrate action %q", action))
	}

	db, err := storage.OpenSQLStorage(ctx, cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer db.Close()

	switch action {
	case "up":
		err = db.Migrate()
	case "down":
		err = db.Rollback()
	}
	if err != nil {
		return err
	}

	version, err := db.SchemaVersion()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, ui.LabelValue("Schema version", version))
	return nil
}
