package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/bfmp/internal/cli/formatter"
	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/spf13/cobra"
)

func newPreviewCmd(app *App) *cobra.Command {
	var flags genFlags
	var noView bool

	cmd := &cobra.Command{
		Use:   "preview <snapshot>",
		Short: "Preview the plan",
		Long: "Builds the plan from a snapshot file. On a terminal the plan opens in a scrollable viewer;\n" +
			"otherwise, or with --no-view, the HTML fragment is written to stdout or --out.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(app, args[0])
			if err != nil {
				return err
			}
			g := generation{snapshot: args[0], state: state, target: domain.TargetFragment, flags: &flags}

			if app.interactive() && !noView && flags.out == "" {
				doc, _, err := app.Plans.Document(cmd.Context(), g.request(app))
				if err != nil {
					return abortedOr(app, g, err)
				}
				return app.RunViewer(doc)
			}

			result, err := runGenerate(cmd.Context(), app, g)
			if err != nil {
				return err
			}
			if flags.out == "" {
				_, err = cmd.OutOrStdout().Write(result.Output)
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGenerateSummary(result.Record, len(result.Unresolved)))
			return nil
		},
	}

	flags.register(cmd, "Write the HTML fragment to this file instead of stdout")
	cmd.Flags().BoolVar(&noView, "no-view", false, "Write HTML instead of opening the viewer")
	return cmd
}

func newPrintCmd(app *App) *cobra.Command {
	var flags genFlags
	var open bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "print <snapshot>",
		Short: "Write a standalone print-ready HTML document",
		Long: "Builds the plan, embeds its images and writes a self-contained HTML document with print styles.\n" +
			"Images that cannot be loaded within --timeout keep their original references.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(app, args[0])
			if err != nil {
				return err
			}
			if flags.out == "" {
				flags.out = defaultOutput(args[0], ".html")
			}
			g := generation{
				snapshot: args[0],
				state:    state,
				target:   domain.TargetPrint,
				flags:    &flags,
				timeout:  timeout,
				spinner:  true,
			}
			result, err := runGenerate(cmd.Context(), app, g)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGenerateSummary(result.Record, len(result.Unresolved)))
			openAfter(cmd, app, open, flags.out)
			return nil
		},
	}

	flags.register(cmd, "Output file (default: snapshot name with .html)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the document in the default browser")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Maximum wait for images (default from config)")
	return cmd
}

func newPDFCmd(app *App) *cobra.Command {
	var flags genFlags
	var open bool

	cmd := &cobra.Command{
		Use:   "pdf <snapshot>",
		Short: "Write the plan as a PDF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(app, args[0])
			if err != nil {
				return err
			}
			if flags.out == "" {
				flags.out = defaultOutput(args[0], ".pdf")
			}
			g := generation{snapshot: args[0], state: state, target: domain.TargetPDF, flags: &flags, spinner: true}
			result, err := runGenerate(cmd.Context(), app, g)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGenerateSummary(result.Record, len(result.Unresolved)))
			openAfter(cmd, app, open, flags.out)
			return nil
		},
	}

	flags.register(cmd, "Output file (default: snapshot name with .pdf)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the PDF with the default viewer")
	return cmd
}
