package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/bfmp/internal/cli/formatter"
	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/alexanderramin/bfmp/internal/form"
	"github.com/alexanderramin/bfmp/internal/present"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const maxListItems = 20

// bfmpHuhTheme returns a custom huh theme using the formatter palette.
func bfmpHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// Follow-up actions offered at the end of the wizard.
const (
	actionNone    = "none"
	actionPreview = "preview"
	actionPrint   = "print"
	actionPDF     = "pdf"
)

// wizardForm binds huh fields to plan values. Text, date and select fields
// live in texts, checkboxes in checks, file fields in files as
// comma-separated paths. List item values are keyed by item key.
type wizardForm struct {
	schema form.Schema
	texts  map[string]*string
	checks map[string]*bool
	files  map[string]*string
	counts map[string]*string
	// removals holds comma-separated entry numbers to drop per list.
	removals map[string]*string
	action   string
}

// newWizardForm prepares the bindings, pre-filled from prefill.
func newWizardForm(schema form.Schema, prefill form.Reader) *wizardForm {
	w := &wizardForm{
		schema: schema,
		texts:  map[string]*string{},
		checks: map[string]*bool{},
		files:  map[string]*string{},
		counts:   map[string]*string{},
		removals: map[string]*string{},
		action:   actionPreview,
	}
	for _, f := range schema.Fields {
		w.bind(f, f.ID, prefill)
	}
	for _, l := range schema.Lists {
		n := max(prefill.Items(l.Prefix), 1)
		count := strconv.Itoa(n)
		w.counts[l.Prefix] = &count
		none := ""
		w.removals[l.Prefix] = &none
		w.bindItems(l, 1, n, prefill)
	}
	return w
}

func (w *wizardForm) bind(f form.Field, id string, prefill form.Reader) {
	v, _ := prefill.Value(id)
	switch {
	case f.Kind == form.KindCheckbox:
		checked := v.Checked
		w.checks[id] = &checked
	case f.Kind.IsFile():
		paths := make([]string, 0, len(v.Files))
		for _, file := range v.Files {
			paths = append(paths, file.Path())
		}
		joined := strings.Join(paths, ", ")
		w.files[id] = &joined
	default:
		text := v.Text
		w.texts[id] = &text
	}
}

func (w *wizardForm) bindItems(l form.List, from, to int, prefill form.Reader) {
	for pos := from; pos <= to; pos++ {
		for _, f := range l.Fields {
			id := form.ItemKey(l.Prefix, f.ID, pos)
			if _, ok := w.texts[id]; !ok {
				w.bind(f, id, prefill)
			}
		}
	}
}

func (w *wizardForm) count(prefix string) int {
	n, err := strconv.Atoi(strings.TrimSpace(*w.counts[prefix]))
	if err != nil || n < 1 {
		return 1
	}
	return min(n, maxListItems)
}

// countsForm asks how many AFC and MGPS entries the plan has and which
// existing entries to drop.
func (w *wizardForm) countsForm() *huh.Form {
	fields := make([]huh.Field, 0, 2*len(w.schema.Lists))
	for _, l := range w.schema.Lists {
		fields = append(fields,
			huh.NewInput().
				Title(fmt.Sprintf("How many %s entries?", l.Label)).
				Value(w.counts[l.Prefix]).
				Validate(validateCount),
			huh.NewInput().
				Title(fmt.Sprintf("Remove %s entries", l.Label)).
				Description("Entry numbers, comma-separated. Later entries move up.").
				Value(w.removals[l.Prefix]).
				Validate(validateRemovals),
		)
	}
	return huh.NewForm(huh.NewGroup(fields...).Title("Anti-fouling Systems")).
		WithTheme(bfmpHuhTheme())
}

// sectionsForm has one page per section and one per list item, followed by
// the follow-up action.
func (w *wizardForm) sectionsForm(prefill form.Reader) *huh.Form {
	var groups []*huh.Group
	for _, sec := range w.schema.Sections {
		var fields []huh.Field
		for _, f := range w.schema.SectionFields(sec.ID) {
			fields = append(fields, w.field(f, f.ID))
		}
		if len(fields) > 0 {
			groups = append(groups, huh.NewGroup(fields...).Title(sec.Label).Description("* recommended"))
		}

		for _, l := range w.schema.SectionLists(sec.ID) {
			n := w.count(l.Prefix)
			w.bindItems(l, 1, n, prefill)
			for pos := 1; pos <= n; pos++ {
				items := make([]huh.Field, 0, len(l.Fields))
				for _, f := range l.Fields {
					items = append(items, w.field(f, form.ItemKey(l.Prefix, f.ID, pos)))
				}
				groups = append(groups, huh.NewGroup(items...).Title(fmt.Sprintf("%s #%d", l.Label, pos)))
			}
		}
	}

	groups = append(groups, huh.NewGroup(
		huh.NewSelect[string]().
			Title("What next?").
			Options(
				huh.NewOption("Preview the plan", actionPreview),
				huh.NewOption("Write print-ready HTML", actionPrint),
				huh.NewOption("Write PDF", actionPDF),
				huh.NewOption("Just save", actionNone),
			).
			Value(&w.action),
	))

	return huh.NewForm(groups...).WithTheme(bfmpHuhTheme())
}

func (w *wizardForm) field(f form.Field, id string) huh.Field {
	title := f.Label
	if f.Required {
		title += " *"
	}
	switch {
	case f.Kind == form.KindTextArea:
		return huh.NewText().Title(title).Value(w.texts[id])
	case f.Kind == form.KindSelect:
		opts := []huh.Option[string]{huh.NewOption("(not set)", "")}
		opts = append(opts, huh.NewOptions(f.Options...)...)
		return huh.NewSelect[string]().Title(title).Options(opts...).Value(w.texts[id])
	case f.Kind == form.KindCheckbox:
		return huh.NewConfirm().Title(title).Value(w.checks[id])
	case f.Kind.IsFile():
		desc := "Path to an image file"
		if f.Kind == form.KindFiles {
			desc = "Comma-separated image paths"
		}
		return huh.NewInput().Title(title).Description(desc).Value(w.files[id]).Validate(validatePaths)
	case f.Kind == form.KindDate:
		return huh.NewInput().Title(title).Placeholder("YYYY-MM-DD").Value(w.texts[id]).Validate(validateDate)
	default:
		return huh.NewInput().Title(title).Value(w.texts[id])
	}
}

// removeEntries drops the entries named in removals and rebinds the later
// items to their new positions.
func (w *wizardForm) removeEntries() error {
	b, err := w.builder()
	if err != nil {
		return err
	}
	changed := false
	for _, l := range w.schema.Lists {
		positions, _ := parsePositions(*w.removals[l.Prefix])
		// Highest first so earlier numbers still name the entries the user saw.
		slices.Sort(positions)
		slices.Reverse(positions)
		for _, pos := range slices.Compact(positions) {
			if err := b.RemoveItem(l.Prefix, pos); err != nil {
				return fmt.Errorf("remove %s entry %d: %w", l.Label, pos, err)
			}
			changed = true
		}
		*w.removals[l.Prefix] = ""
	}
	if !changed {
		return nil
	}

	st := b.State()
	for _, l := range w.schema.Lists {
		for pos := 1; pos <= maxListItems+1; pos++ {
			for _, f := range l.Fields {
				delete(w.texts, form.ItemKey(l.Prefix, f.ID, pos))
			}
		}
		n := st.Items(l.Prefix)
		*w.counts[l.Prefix] = strconv.Itoa(n)
		w.bindItems(l, 1, n, st)
	}
	return nil
}

// state converts the bound values into form state.
func (w *wizardForm) state() (form.State, error) {
	b, err := w.builder()
	if err != nil {
		return form.State{}, err
	}
	return b.State(), nil
}

func (w *wizardForm) builder() (*form.Builder, error) {
	b := form.NewBuilder(w.schema)
	for _, f := range w.schema.Fields {
		w.apply(b, f, f.ID)
	}
	for _, l := range w.schema.Lists {
		n := w.count(l.Prefix)
		for b.Items(l.Prefix) < n {
			if _, err := b.AppendItem(l.Prefix); err != nil {
				return nil, err
			}
		}
		for pos := 1; pos <= n; pos++ {
			for _, f := range l.Fields {
				text := w.texts[form.ItemKey(l.Prefix, f.ID, pos)]
				if text == nil {
					continue
				}
				if err := b.SetItemText(l.Prefix, pos, f.ID, *text); err != nil {
					return nil, err
				}
			}
		}
	}
	return b, nil
}

func (w *wizardForm) apply(b *form.Builder, f form.Field, id string) {
	switch {
	case f.Kind == form.KindCheckbox:
		b.SetChecked(id, *w.checks[id])
	case f.Kind.IsFile():
		var files []form.File
		for _, p := range splitPaths(*w.files[id]) {
			files = append(files, form.InspectFile(p))
		}
		if f.Kind == form.KindFile && len(files) > 1 {
			files = files[:1]
		}
		b.SetFiles(id, files...)
	default:
		b.SetText(id, *w.texts[id])
	}
}

func splitPaths(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func validateCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > maxListItems {
		return fmt.Errorf("enter a number from 1 to %d", maxListItems)
	}
	return nil
}

func parsePositions(raw string) ([]int, error) {
	var out []int
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%q is not an entry number", p)
		}
		out = append(out, n)
	}
	return out, nil
}

func validateRemovals(s string) error {
	_, err := parsePositions(s)
	return err
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return errors.New("use the format YYYY-MM-DD")
	}
	return nil
}

func validatePaths(s string) error {
	for _, p := range splitPaths(s) {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%s: file not found", p)
		}
	}
	return nil
}

func newWizardCmd(app *App) *cobra.Command {
	var save string

	cmd := &cobra.Command{
		Use:   "wizard [snapshot]",
		Short: "Fill in the plan step by step",
		Long: "Walks through every section of the plan in an interactive form. An existing snapshot\n" +
			"pre-fills the answers. The result is saved as a snapshot file and can be previewed or printed.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("the wizard needs an interactive terminal; use 'bfmp init' to create a snapshot file instead")
			}

			var prefill form.Reader = form.State{}
			if len(args) == 1 {
				if save == "" {
					save = args[0]
				}
				if _, err := os.Stat(args[0]); err == nil {
					state, err := loadState(app, args[0])
					if err != nil {
						return err
					}
					prefill = state
				}
			}
			if save == "" {
				save = "plan.yaml"
			}

			w := newWizardForm(app.Schema, prefill)
			if err := app.RunForm(w.countsForm()); err != nil {
				return wizardAborted(cmd, err)
			}
			if err := w.removeEntries(); err != nil {
				return err
			}
			if err := app.RunForm(w.sectionsForm(prefill)); err != nil {
				return wizardAborted(cmd, err)
			}

			state, err := w.state()
			if err != nil {
				return err
			}
			data, err := form.EncodeSnapshot(state, app.Schema)
			if err != nil {
				return err
			}
			if err := present.WriteFile(save, data); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Saved "+save))

			return runWizardAction(cmd, app, w.action, save, state)
		},
	}

	cmd.Flags().StringVarP(&save, "save", "s", "", "Snapshot file to write (default: the snapshot argument or plan.yaml)")
	return cmd
}

func wizardAborted(cmd *cobra.Command, err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("Wizard cancelled."))
		return nil
	}
	return err
}

func runWizardAction(cmd *cobra.Command, app *App, action, snapshot string, state form.State) error {
	flags := &genFlags{}
	g := generation{snapshot: snapshot, state: state, flags: flags, spinner: true}

	switch action {
	case actionPreview:
		g.target = domain.TargetFragment
		doc, _, err := app.Plans.Document(cmd.Context(), g.request(app))
		if err != nil {
			return abortedOr(app, g, err)
		}
		return app.RunViewer(doc)
	case actionPrint, actionPDF:
		g.target, flags.out = domain.TargetPrint, defaultOutput(snapshot, ".html")
		if action == actionPDF {
			g.target, flags.out = domain.TargetPDF, defaultOutput(snapshot, ".pdf")
		}
		result, err := runGenerate(cmd.Context(), app, g)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGenerateSummary(result.Record, len(result.Unresolved)))
		return nil
	default:
		return nil
	}
}
