package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alexanderramin/bfmp/internal/cli/formatter"
	"github.com/alexanderramin/bfmp/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Config file: "+path))
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"KEY", "VALUE", "SOURCE"}, configRows(app.Config)))
			return nil
		},
	}
	cmd.AddCommand(newConfigInitCmd(app))
	return cmd
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", path, err)
			}
			if err := config.Save(path, config.Defaults()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Wrote "+path))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}

func configRows(cfg config.AppConfig) [][]string {
	entries := []struct{ key, value string }{
		{"report.date_layout", cfg.Report.DateLayout},
		{"report.organisation", cfg.Report.Organisation},
		{"print.image_timeout_ms", strconv.Itoa(cfg.Print.ImageTimeoutMs)},
		{"history.enabled", strconv.FormatBool(cfg.History.Enabled)},
		{"history.path", cfg.History.Path},
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
		{"logging.source", strconv.FormatBool(cfg.Logging.Source)},
		{"logging.file", cfg.Logging.File},
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		source := "file/default"
		if env := config.EnvOverrideFor(e.key); env != "" {
			source = "$" + env
		}
		value := e.value
		if value == "" {
			value = "--"
		}
		rows = append(rows, []string{e.key, value, formatter.Dim(source)})
	}
	return rows
}
