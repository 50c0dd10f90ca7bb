package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/alexanderramin/bfmp/internal/form"
	"github.com/alexanderramin/bfmp/internal/report"
	"github.com/charmbracelet/lipgloss"
)

// RenderedDocument is a terminal rendering of a report. SectionLines holds
// the line index at which each section heading starts.
type RenderedDocument struct {
	Text          string
	SectionLines  []int
	SectionTitles []string
}

// FormatDocument renders doc for the terminal viewer, wrapping prose at width.
func FormatDocument(doc report.Document, width int) RenderedDocument {
	if width < 40 {
		width = 40
	}
	w := &docWriter{width: width}

	w.line(StyleHeader.Render(strings.ToUpper(doc.Header.Title)))
	w.line(fmt.Sprintf("%s %s  %s", Dim("Document Number:"), inlines(doc.Header.Number), StylePurple.Render(doc.Header.Revision)))
	w.line(fmt.Sprintf("%s %s", Dim("Vessel Name:"), inlines(doc.Header.Vessel)))
	w.line(fmt.Sprintf("%s %s", Dim("IMO Number:"), inlines(doc.Header.IMO)))
	w.line(fmt.Sprintf("%s %s", Dim("Date:"), doc.Header.Date))
	w.line("")

	if len(doc.TOC) > 0 {
		w.line(Bold("Index"))
		for i, e := range doc.TOC {
			w.line(fmt.Sprintf("  %2d. %s", i+1, e.Title))
		}
		w.line("")
	}

	var out RenderedDocument
	for _, s := range doc.Sections {
		out.SectionLines = append(out.SectionLines, len(w.lines))
		out.SectionTitles = append(out.SectionTitles, s.Heading())
		w.line(Header(s.Heading()))
		for _, b := range s.Blocks {
			w.block(b, "  ")
		}
		w.line("")
	}

	for _, f := range doc.Footer {
		w.line(Dim(f))
	}

	out.Text = strings.Join(w.lines, "\n")
	return out
}

type docWriter struct {
	width int
	lines []string
}

func (w *docWriter) line(s string) {
	w.lines = append(w.lines, strings.Split(s, "\n")...)
}

func (w *docWriter) wrapped(indent, s string) {
	style := lipgloss.NewStyle().Width(w.width - lipgloss.Width(indent))
	for _, l := range strings.Split(style.Render(s), "\n") {
		w.line(indent + strings.TrimRight(l, " "))
	}
}

func (w *docWriter) block(b report.Block, indent string) {
	switch b := b.(type) {
	case report.Heading:
		w.line("")
		w.line(indent + Bold(b.Text))
	case report.Paragraph:
		w.wrapped(indent, inlines(b.Parts...))
	case report.Table:
		w.table(b, indent)
	case report.Image:
		label := b.Alt
		if label == "" {
			label = "image"
		}
		w.line(indent + StyleBlue.Render("[ "+label+" ]"))
		if len(b.Caption) > 0 {
			w.wrapped(indent, Dim(inlines(b.Caption...)))
		}
	case report.List:
		for _, item := range b.Items {
			w.wrapped(indent+"• ", item)
		}
	case report.PlaceholderBlock:
		w.wrapped(indent, StylePlaceholder.Render(b.Text))
	case report.Group:
		w.line("")
		w.line(indent + StyleBlue.Bold(true).Render(b.Title))
		for _, inner := range b.Blocks {
			w.block(inner, indent+"  ")
		}
	case report.SignatureBlock:
		for _, r := range b.Rows {
			w.line(fmt.Sprintf("%s%s %s", indent, Dim(r.Role+":"), inlines(r.Name)))
			w.line(indent + Dim("  Signature: ____________________  Date: ____________"))
		}
	}
}

// table renders label/value grids as "Label: value" lines and registers
// with a header row as a bordered table.
func (w *docWriter) table(t report.Table, indent string) {
	if len(t.Head) > 0 {
		rows := make([][]string, 0, len(t.Rows))
		for _, r := range t.Rows {
			row := make([]string, 0, len(r))
			for _, c := range r {
				row = append(row, inlines(c.Parts...))
			}
			rows = append(rows, row)
		}
		for _, l := range strings.Split(strings.TrimRight(RenderTable(t.Head, rows), "\n"), "\n") {
			w.line(indent + l)
		}
		return
	}
	for _, r := range t.Rows {
		var label string
		for _, c := range r {
			if c.Header {
				label = inlines(c.Parts...)
				continue
			}
			w.wrapped(indent, Dim(label+":")+" "+inlines(c.Parts...))
			label = ""
		}
		if label != "" {
			w.line(indent + Bold(label))
		}
	}
}

func inlines(parts ...report.Inline) string {
	var b strings.Builder
	for _, p := range parts {
		switch {
		case p.Placeholder:
			b.WriteString(StylePlaceholder.Render(p.Text))
		case p.Strong:
			b.WriteString(StyleBold.Render(p.Text))
		default:
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// FormatValidation renders the per-section presence report. missing maps a
// section label to its empty required field ids.
func FormatValidation(schema form.Schema, missing map[string][]string) string {
	headers := []string{"SECTION", "STATUS", "MISSING"}
	rows := make([][]string, 0, len(schema.Sections))
	for _, sec := range schema.Sections {
		ids := missing[sec.Label]
		labels := make([]string, 0, len(ids))
		for _, id := range ids {
			labels = append(labels, FieldLabel(schema, id))
		}
		rows = append(rows, []string{
			Bold(sec.Label),
			SectionStatus(len(ids) == 0),
			Dim(strings.Join(labels, ", ")),
		})
	}
	return RenderTable(headers, rows)
}

// FieldLabel returns the display label for a field id. List item keys get
// their item number, e.g. "Product Name (#2)".
func FieldLabel(schema form.Schema, id string) string {
	f, ok := schema.Field(id)
	if !ok {
		return id
	}
	if f.ID == id {
		return f.Label
	}
	return fmt.Sprintf("%s (#%s)", f.Label, strings.TrimLeft(id, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"))
}

// FormatHistory renders ledger entries newest first.
func FormatHistory(records []*domain.RenderRecord, now time.Time) string {
	if len(records) == 0 {
		return Dim("No generations recorded yet.") + "\n"
	}
	headers := []string{"ID", "WHEN", "TARGET", "FORMAT", "STATUS", "SIZE", "OUTPUT"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		size := "--"
		if r.OutputBytes > 0 {
			size = FormatBytes(r.OutputBytes)
		}
		output := r.OutputPath
		if output == "" {
			output = "--"
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			HumanTimestampFrom(r.CreatedAt, now),
			TargetBadge(r.Target),
			string(r.Format),
			StatusPill(r.Status),
			size,
			Dim(Truncate(output, 40)),
		})
	}
	return RenderTable(headers, rows)
}

// FormatRecord renders one ledger entry in a box.
func FormatRecord(rec *domain.RenderRecord, now time.Time) string {
	orDash := func(s string) string {
		if s == "" {
			return Dim("--")
		}
		return s
	}
	missing := Dim("none")
	if len(rec.MissingSections) > 0 {
		missing = StyleYellow.Render(strings.Join(rec.MissingSections, ", "))
	}
	rows := [][2]string{
		{"ID", rec.ID},
		{"Created", fmt.Sprintf("%s (%s)", rec.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC"), HumanTimestampFrom(rec.CreatedAt, now))},
		{"Target", TargetBadge(rec.Target)},
		{"Format", string(rec.Format)},
		{"Status", StatusPill(rec.Status)},
		{"Output", orDash(rec.OutputPath)},
		{"Size", FormatBytes(rec.OutputBytes)},
		{"Digest", orDash(rec.Digest)},
		{"Duration", rec.Duration.Round(time.Millisecond).String()},
		{"Placeholders", missing},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s %s", Dim(fmt.Sprintf("%-13s", r[0]+":")), r[1]))
	}
	return RenderBox("Generation", strings.Join(lines, "\n")) + "\n"
}

// FormatSchema lists every field id with its section, control kind and
// whether validation requires it.
func FormatSchema(schema form.Schema) string {
	labels := map[string]string{}
	for _, s := range schema.Sections {
		labels[s.ID] = s.Label
	}
	headers := []string{"ID", "LABEL", "SECTION", "KIND", "REQUIRED"}
	var rows [][]string
	add := func(id string, f form.Field) {
		req := ""
		if f.Required {
			req = StyleYellow.Render("yes")
		}
		rows = append(rows, []string{id, f.Label, labels[f.Section], Dim(f.Kind.String()), req})
	}
	for _, f := range schema.Fields {
		add(f.ID, f)
	}
	for _, l := range schema.Lists {
		for _, f := range l.Fields {
			add(form.ItemKey(l.Prefix, f.ID, 1)+"…", f)
		}
	}
	return RenderTable(headers, rows)
}

// FormatGenerateSummary is the one-line report printed after a generation.
func FormatGenerateSummary(rec *domain.RenderRecord, unresolved int) string {
	var b strings.Builder
	dest := rec.OutputPath
	if dest == "" {
		dest = "stdout"
	}
	b.WriteString(Success(fmt.Sprintf("%s written to %s (%s)", strings.ToUpper(string(rec.Target)), dest, FormatBytes(rec.OutputBytes))))
	b.WriteString("\n")
	if len(rec.MissingSections) > 0 {
		b.WriteString(Warning("Placeholders inserted for: " + strings.Join(rec.MissingSections, ", ")))
		b.WriteString("\n")
	}
	if unresolved > 0 {
		b.WriteString(Warning(fmt.Sprintf("%d image(s) could not be embedded; their original references were kept", unresolved)))
		b.WriteString("\n")
	}
	return b.String()
}
