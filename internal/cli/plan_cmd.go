package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/bfmp/internal/cli/formatter"
	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/alexanderramin/bfmp/internal/form"
	"github.com/alexanderramin/bfmp/internal/presence"
	"github.com/alexanderramin/bfmp/internal/present"
	"github.com/alexanderramin/bfmp/internal/repository"
	"github.com/alexanderramin/bfmp/internal/service"
	"github.com/spf13/cobra"
)

// ErrIncomplete is returned by validate when recommended fields are empty.
var ErrIncomplete = errors.New("plan is incomplete")

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <snapshot>",
		Short: "Report which sections have empty recommended fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(app, args[0])
			if err != nil {
				return err
			}
			res := app.Plans.Check(state)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatValidation(app.Schema, presence.Fields(state, app.Schema)))
			if !res.Valid() {
				return fmt.Errorf("%w: %s", ErrIncomplete, res.Summary())
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("All recommended fields are filled in."))
			return nil
		},
	}
}

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	var prune string
	var keep int
	var status string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.History == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Render history is disabled."))
				return nil
			}
			if prune != "" || keep > 0 {
				var opts service.PruneOptions
				if prune != "" {
					age, err := parseAge(prune)
					if err != nil {
						return err
					}
					opts.OlderThan = age
				}
				opts.Keep = keep
				n, err := app.History.Prune(cmd.Context(), opts)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Removed %d record(s).", n)))
				return nil
			}
			var records []*domain.RenderRecord
			var err error
			if status != "" {
				st, ok := domain.ParseRenderStatus(status)
				if !ok {
					return fmt.Errorf("unknown status %q (want completed, aborted or failed)", status)
				}
				records, err = app.History.ListStatus(cmd.Context(), st, limit)
			} else {
				records, err = app.History.List(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(records, app.Now()))
			return nil
		},
	}

	cmd.AddCommand(newHistoryShowCmd(app))
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of records to show")
	cmd.Flags().StringVar(&prune, "prune", "", "Delete records older than this age (e.g. 30d, 72h)")
	cmd.Flags().IntVar(&keep, "keep", 0, "Delete all but this many of the most recent records")
	cmd.Flags().StringVar(&status, "status", "", "Only show completed, aborted or failed generations")
	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one generation; the id may be shortened",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Render history is disabled."))
				return nil
			}
			rec, err := findRecord(cmd.Context(), app.History, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecord(rec, app.Now()))
			return nil
		},
	}
}

// findRecord resolves a full id or a unique prefix of a recent one.
func findRecord(ctx context.Context, history service.HistoryService, id string) (*domain.RenderRecord, error) {
	rec, err := history.Get(ctx, id)
	if err == nil || !errors.Is(err, repository.ErrNotFound) {
		return rec, err
	}

	recent, err := history.List(ctx, 500)
	if err != nil {
		return nil, err
	}
	var match *domain.RenderRecord
	for _, r := range recent {
		if !strings.HasPrefix(r.ID, id) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("id %q is ambiguous", id)
		}
		match = r
	}
	if match == nil {
		return nil, fmt.Errorf("generation %q: %w", id, repository.ErrNotFound)
	}
	return match, nil
}

// parseAge accepts Go durations plus a whole-day form such as "30d".
func parseAge(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid age %q", raw)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid age %q", raw)
	}
	return d, nil
}

func newSchemaCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "List the form field identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), form.SnapshotSchemaJSON())
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchema(app.Schema))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the JSON Schema of snapshot files")
	return cmd
}

func newInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write a blank snapshot file to fill in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				if !(linePrompt{in: app.In, out: cmd.ErrOrStderr()}).confirm(path+" exists. Overwrite?", false) {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
			data, err := form.EncodeSnapshot(form.NewBuilder(app.Schema).State(), app.Schema)
			if err != nil {
				return err
			}
			if err := present.WriteFile(path, data); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Created "+path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}
