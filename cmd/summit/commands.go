package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/summit-resolutions/internal/core/domain"
	"github.com/comitanigiacomo/summit-resolutions/internal/core/services"
	"github.com/comitanigiacomo/summit-resolutions/internal/ui"
)

type cmdEnv struct {
	ctx   context.Context
	store *services.GoalStore
	out   io.Writer
}

type command func(env *cmdEnv, args []string) error

var commands map[string]command

func init() {
	commands = map[string]command{
		"add":     addCmd,
		"list":    listCmd,
		"ls":      listCmd,
		"check":   func(env *cmdEnv, args []string) error { return stepCmd(env, "check", args, 1) },
		"uncheck": func(env *cmdEnv, args []string) error { return stepCmd(env, "uncheck", args, -1) },
		"adjust":  adjustCmd,
		"show":    showCmd,
		"rm":      rmCmd,
		"stats":   statsCmd,
		"export":  exportCmd,
	}
}

func newFlagSet(name string, env *cmdEnv) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(env.out)
	return fs
}

func parseFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return usageError(err.Error())
	}
	return nil
}

func addCmd(env *cmdEnv, args []string) error {
	fs := newFlagSet("add", env)
	goalType := fs.StringP("type", "t", string(domain.GoalTypeDaily), "daily, monthly or anytime")
	notes := fs.StringP("notes", "n", "", "free-form notes")
	target := fs.String("target", "", "completions needed per period")
	due := fs.String("due", "", "due date (YYYY-MM-DD)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	goal, err := env.store.Create(env.ctx, services.CreateGoalInput{
		Title:       strings.Join(fs.Args(), " "),
		Type:        *goalType,
		Notes:       *notes,
		TargetCount: *target,
		DueDate:     *due,
	})
	switch {
	case errors.Is(err, domain.ErrGoalTitleEmpty):
		fmt.Fprintln(env.out, ui.Muted.Render("nothing to add"))
		return nil
	case errors.Is(err, domain.ErrInvalidGoalType):
		return usageError(err.Error())
	case err != nil:
		return err
	}

	fmt.Fprintf(env.out, "%s Added %s %s\n", ui.IconPlus, ui.Muted.Render(ui.ShortID(goal.ID)), ui.Key.Render(goal.Title))
	return nil
}

func listCmd(env *cmdEnv, args []string) error {
	fs := newFlagSet("list", env)
	typeFilter := fs.StringP("type", "t", "", "only show goals of this type")
	asJSON := fs.Bool("json", false, "print the views as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var filter domain.GoalType
	if *typeFilter != "" {
		t, err := domain.ParseGoalType(*typeFilter)
		if err != nil {
			return usageError(err.Error())
		}
		filter = t
	}

	views := env.store.Views(filter)
	if *asJSON {
		return writeJSON(env.out, views)
	}

	if len(views) == 0 {
		fmt.Fprintln(env.out, ui.Muted.Render("no goals yet, add one with: summit add <title>"))
		return nil
	}

	fmt.Fprintln(env.out, ui.Heading(ui.IconSummit, "Resolutions"))
	for _, v := range views {
		fmt.Fprintln(env.out, ui.GoalLine(v))
	}
	return nil
}

func stepCmd(env *cmdEnv, name string, args []string, delta int) error {
	if len(args) != 1 {
		return usageError(fmt.Sprintf("usage: summit %s <id>", name))
	}
	return applyDelta(env, args[0], delta)
}

func adjustCmd(env *cmdEnv, args []string) error {
	if len(args) != 2 {
		return usageError("usage: summit adjust <id> <delta>")
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil || !domain.ValidDelta(delta) {
		return usageError(domain.ErrDeltaOutOfRange.Error())
	}
	return applyDelta(env, args[0], delta)
}

func applyDelta(env *cmdEnv, ref string, delta int) error {
	id, err := resolveID(env.store, ref)
	if err != nil {
		return err
	}

	goal, err := env.store.Adjust(env.ctx, id, delta)
	if err != nil {
		return err
	}

	fmt.Fprintln(env.out, ui.GoalLine(domain.NewGoalView(goal, env.store.Now())))
	return nil
}

func showCmd(env *cmdEnv, args []string) error {
	if len(args) != 1 {
		return usageError("usage: summit show <id>")
	}
	id, err := resolveID(env.store, args[0])
	if err != nil {
		return err
	}

	d, err := env.store.Detail(id)
	if err != nil {
		return err
	}

	lines := []string{
		ui.GoalLine(d.GoalView),
		ui.LabelValue("Id", d.ID),
		ui.LabelValue("Created", d.CreatedAt.In(env.store.Now().Location()).Format("2006-01-02 15:04")),
	}
	if d.Notes != "" {
		lines = append(lines, ui.LabelValue("Notes", d.Notes))
	}
	if d.Type != domain.GoalTypeAnytime {
		lines = append(lines, ui.LabelValue("Streak", fmt.Sprintf("%s %d (best %d)", ui.IconFire, d.CurrentStreak, d.LongestStreak)))
	}

	if len(d.History) > 0 {
		lines = append(lines, "", ui.H2.Render("History"))
		for i, p := range d.History {
			if i == 10 {
				lines = append(lines, ui.Muted.Render(fmt.Sprintf("… %d more", len(d.History)-i)))
				break
			}
			icon := ui.IconOpen
			if p.Complete {
				icon = ui.IconDone
			}
			lines = append(lines, fmt.Sprintf("%s %s %d", icon, p.PeriodKey, p.Count))
		}
	}

	fmt.Fprintln(env.out, ui.Panel.Render(strings.Join(lines, "\n")))
	return nil
}

func rmCmd(env *cmdEnv, args []string) error {
	if len(args) != 1 {
		return usageError("usage: summit rm <id>")
	}
	id, err := resolveID(env.store, args[0])
	if err != nil {
		return err
	}

	if err := env.store.Delete(env.ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(env.out, "%s Deleted %s\n", ui.IconTrash, ui.Muted.Render(ui.ShortID(id)))
	return nil
}

func statsCmd(env *cmdEnv, args []string) error {
	fs := newFlagSet("stats", env)
	asJSON := fs.Bool("json", false, "print as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	stats := env.store.Stats()
	if *asJSON {
		return writeJSON(env.out, stats)
	}

	fmt.Fprintln(env.out, ui.Heading(ui.IconStats, "Stats"))
	fmt.Fprintln(env.out, ui.LabelValue("Goals", stats.TotalGoals))
	fmt.Fprintln(env.out, ui.LabelValue("Complete", fmt.Sprintf("%d  %s", stats.TotalComplete, ui.ProgressBar(stats.CompletionRate, 20))))
	for _, t := range domain.GoalTypes {
		ts := stats.ByType[t]
		fmt.Fprintf(env.out, "  %s %d/%d\n", ui.TypeBadge(t), ts.Complete, ts.Total)
	}
	return nil
}

func exportCmd(env *cmdEnv, args []string) error {
	fs := newFlagSet("export", env)
	format := fs.StringP("format", "f", "json", "json or yaml")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	goals := env.store.List("")

	switch strings.ToLower(*format) {
	case "json":
		return writeJSON(env.out, goals)
	case "yaml", "yml":
		enc := yaml.NewEncoder(env.out)
		enc.SetIndent(2)
		if err := enc.Encode(goals); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return usageError(fmt.Sprintf("unknown export format %q", *format))
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// resolveID accepts a full id or any prefix matching exactly one goal.
func resolveID(store *services.GoalStore, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", usageError("goal id is required")
	}

	var matches []string
	for _, g := range store.List("") {
		if g.ID == ref {
			return g.ID, nil
		}
		if strings.HasPrefix(g.ID, ref) {
			matches = append(matches, g.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", domain.ErrGoalNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d goals)", ref, len(matches))
	}
}
