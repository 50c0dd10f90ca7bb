package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/alexanderramin/bfmp/internal/presence"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// genFlags are shared by the commands that generate a plan.
type genFlags struct {
	format formatFlag
	yes    bool
	strict bool
	out    string
}

func (f *genFlags) register(cmd *cobra.Command, outUsage string) {
	cmd.Flags().Var(&f.format, "format", "Override the plan format: full, bfmp or bfrb")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "Always proceed, inserting placeholders for missing information")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Never proceed when recommended fields are missing")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", outUsage)
	cmd.MarkFlagsMutuallyExclusive("yes", "strict")
}

// policy chooses how missing recommended fields are handled. Without a flag
// an interactive terminal asks; anything else declines.
func (f *genFlags) policy(app *App) presence.ProceedPolicy {
	switch {
	case f.yes:
		return presence.AlwaysProceed
	case f.strict:
		return presence.NeverProceed
	case app.Plain || app.IsInteractive():
		return presence.PolicyFunc(func(_ context.Context, res presence.Result) (bool, error) {
			return app.Confirm(presence.Question(res))
		})
	default:
		return presence.NeverProceed
	}
}

// formatFlag is a plan format override. Bad values fail at flag parsing.
type formatFlag struct {
	format domain.PlanFormat
}

var _ pflag.Value = (*formatFlag)(nil)

func (f *formatFlag) String() string { return string(f.format) }

func (f *formatFlag) Set(raw string) error {
	format, err := parseFormatFlag(raw)
	if err != nil {
		return err
	}
	f.format = format
	return nil
}

func (f *formatFlag) Type() string { return "format" }

func (f *genFlags) planFormat() domain.PlanFormat {
	return f.format.format
}

// parseFormatFlag accepts the exact format literals and the short aliases
// full, bfmp and bfrb. Empty means no override.
func parseFormatFlag(raw string) (domain.PlanFormat, error) {
	if raw == "" {
		return "", nil
	}
	for _, f := range domain.PlanFormats {
		if raw == string(f) {
			return f, nil
		}
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "full", "full-plan":
		return domain.FormatFullPlan, nil
	case "bfmp", "bfmp-only":
		return domain.FormatBFMPOnly, nil
	case "bfrb", "bfrb-only", "record-book":
		return domain.FormatBFRBOnly, nil
	}
	return "", fmt.Errorf("unknown plan format %q (want full, bfmp or bfrb)", raw)
}

// defaultConfirm asks with a huh confirm dialog, or a y/N line prompt in
// plain mode.
func (a *App) defaultConfirm(question string) (bool, error) {
	if !a.interactive() {
		return linePrompt{in: a.In, out: a.Err}.confirm(question, false), nil
	}

	ok := false
	err := a.RunForm(huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Missing information").
				Description(question).
				Affirmative("Insert placeholders").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(bfmpHuhTheme()).WithShowHelp(false))
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}
