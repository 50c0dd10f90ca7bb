package cli

import (
	"io"
	"os"
	"time"

	"github.com/alexanderramin/bfmp/internal/config"
	"github.com/alexanderramin/bfmp/internal/form"
	"github.com/alexanderramin/bfmp/internal/present"
	"github.com/alexanderramin/bfmp/internal/report"
	"github.com/alexanderramin/bfmp/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// App holds the services and terminal hooks used by CLI commands. The func
// fields default to the real terminal implementations and are replaced in
// tests.
type App struct {
	Schema  form.Schema
	Config  config.AppConfig
	Plans   service.PlanService
	History service.HistoryService // nil when the ledger is disabled

	In  io.Reader
	Out io.Writer
	Err io.Writer

	IsInteractive func() bool
	Confirm       func(question string) (bool, error)
	RunForm       func(f *huh.Form) error
	RunViewer     func(doc report.Document) error
	OpenFile      func(path string) error
	Now           func() time.Time

	// Plain swaps full-screen forms and the viewer for line prompts.
	Plain bool
}

func (a *App) withDefaults() {
	if a.Schema.Sections == nil {
		a.Schema = form.PlanSchema()
	}
	if a.In == nil {
		a.In = os.Stdin
	}
	if a.Out == nil {
		a.Out = os.Stdout
	}
	if a.Err == nil {
		a.Err = os.Stderr
	}
	if a.IsInteractive == nil {
		a.IsInteractive = func() bool { return false }
	}
	if a.Confirm == nil {
		a.Confirm = a.defaultConfirm
	}
	if a.RunForm == nil {
		a.RunForm = func(f *huh.Form) error { return f.Run() }
	}
	if a.RunViewer == nil {
		a.RunViewer = runViewer
	}
	if a.OpenFile == nil {
		a.OpenFile = present.Open
	}
	if a.Now == nil {
		a.Now = time.Now
	}
}

// interactive reports whether full-screen terminal UI may be used.
func (a *App) interactive() bool {
	return !a.Plain && a.IsInteractive()
}

// NewRootCmd creates the top-level "bfmp" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	app.withDefaults()

	root := &cobra.Command{
		Use:           "bfmp",
		Short:         "Biofouling Management Plan generator",
		Long:          "Collects vessel biofouling-management data and generates a Biofouling Management Plan and Record Book.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.Err)
	root.PersistentFlags().BoolVar(&app.Plain, "plain", false, "Use line prompts instead of full-screen forms and the viewer")

	root.AddCommand(
		newWizardCmd(app),
		newPreviewCmd(app),
		newPrintCmd(app),
		newPDFCmd(app),
		newValidateCmd(app),
		newHistoryCmd(app),
		newSchemaCmd(app),
		newInitCmd(app),
		newConfigCmd(app),
	)

	return root
}
