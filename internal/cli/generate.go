package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/bfmp/internal/cli/formatter"
	"github.com/alexanderramin/bfmp/internal/collector"
	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/alexanderramin/bfmp/internal/form"
	"github.com/alexanderramin/bfmp/internal/service"
	"github.com/spf13/cobra"
)

// generation is one generate invocation assembled from a command's flags.
type generation struct {
	snapshot string
	state    form.Reader
	target   domain.RenderTarget
	flags    *genFlags
	timeout  time.Duration
	spinner  bool
}

// loadState reads the snapshot file at path.
func loadState(app *App, path string) (form.State, error) {
	state, err := form.LoadSnapshot(path, app.Schema)
	if err != nil {
		return form.State{}, fmt.Errorf("load %s: %w", path, err)
	}
	return state, nil
}

// defaultOutput derives an output path next to the snapshot: plan.yaml
// becomes plan.html or plan.pdf.
func defaultOutput(snapshot, ext string) string {
	base := strings.TrimSuffix(snapshot, filepath.Ext(snapshot))
	if base == "" {
		base = "plan"
	}
	return base + ext
}

func (g generation) request(app *App) service.GenerateRequest {
	return service.GenerateRequest{
		State:        g.state,
		Target:       g.target,
		Format:       g.flags.planFormat(),
		OutputPath:   g.flags.out,
		Policy:       g.flags.policy(app),
		ImageTimeout: g.timeout,
	}
}

// runGenerate generates the plan and reports aborts with the list of
// incomplete sections.
func runGenerate(ctx context.Context, app *App, g generation) (*service.GenerateResult, error) {
	req := g.request(app)

	var result *service.GenerateResult
	var err error
	call := func() error {
		var err error
		result, err = app.Plans.Generate(ctx, req)
		return err
	}
	if g.spinner && app.interactive() {
		err = runWithSpinner(app, "Generating "+string(g.target)+" output...", call)
	} else {
		err = call()
	}

	if err != nil {
		return nil, abortedOr(app, g, err)
	}
	return result, nil
}

// abortedOr prints the incomplete sections when err is a declined
// generation. err is returned unchanged.
func abortedOr(app *App, g generation, err error) error {
	if errors.Is(err, collector.ErrAborted) {
		res := app.Plans.Check(g.state)
		fmt.Fprintln(app.Err, formatter.Warning("Generation cancelled. Incomplete sections: "+res.Summary()))
	}
	return err
}

// openAfter opens path with the desktop handler when requested, reporting
// failures without failing the command.
func openAfter(cmd *cobra.Command, app *App, open bool, path string) {
	if !open {
		return
	}
	if err := app.OpenFile(path); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.Warning(err.Error()))
	}
}
