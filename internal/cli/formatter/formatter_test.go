package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/alexanderramin/bfmp/internal/form"
	"github.com/alexanderramin/bfmp/internal/report"
	"github.com/alexanderramin/bfmp/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences so assertions are terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"just now", now.Add(-10 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"yesterday", now.Add(-30 * time.Hour), "Yesterday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestampFrom(tt.input, now))
		})
	}

	old := now.AddDate(0, -2, 0)
	assert.Equal(t, old.Local().Format("Jan 2, 2006"), HumanTimestampFrom(old, now))
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "unbounded", Truncate("unbounded", 0))
	assert.Equal(t, "Curaç…", Truncate("Curaçao harbour", 6))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "12345678", stripANSI(TruncID("1234567890abcdef")))
	assert.Equal(t, "abc", stripANSI(TruncID("abc")))
}

func TestStatusPill(t *testing.T) {
	assert.Equal(t, "● Completed", stripANSI(StatusPill(domain.RenderCompleted)))
	assert.Equal(t, "○ Aborted", stripANSI(StatusPill(domain.RenderAborted)))
	assert.Equal(t, "✖ Failed", stripANSI(StatusPill(domain.RenderFailed)))
	assert.Equal(t, "queued", stripANSI(StatusPill("queued")))
}

func TestHeaderUnderlineMatchesWidth(t *testing.T) {
	lines := strings.Split(stripANSI(Header("Niche Areas")), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "NICHE AREAS", lines[0])
	assert.Equal(t, strings.Repeat("─", len("NICHE AREAS")), lines[1])
}

func TestRenderTable(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))

	out := stripANSI(RenderTable([]string{"NAME", "STATUS"}, [][]string{{"Vessel Details", "ok"}}))
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Vessel Details")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestFormatValidation(t *testing.T) {
	schema := form.PlanSchema()
	out := stripANSI(FormatValidation(schema, map[string][]string{
		"Vessel Details":       {form.FieldVesselName},
		"Anti-fouling Systems": {form.ItemKey(form.ListAFC, form.ItemProductName, 2)},
	}))

	for _, sec := range schema.Sections {
		assert.Contains(t, out, sec.Label)
	}
	assert.Contains(t, out, "Vessel Name")
	assert.Contains(t, out, "Product Name (#2)")
	assert.Equal(t, 2, strings.Count(out, "✖ Incomplete"))
	assert.Equal(t, 3, strings.Count(out, "✔ Complete"))
}

func TestFieldLabel(t *testing.T) {
	schema := form.PlanSchema()
	assert.Equal(t, "Vessel Name", FieldLabel(schema, form.FieldVesselName))
	assert.Equal(t, "Type of MGPS (#1)", FieldLabel(schema, form.ItemKey(form.ListMGPS, form.ItemType, 1)))
	assert.Equal(t, "mystery", FieldLabel(schema, "mystery"))
}

func TestFormatHistory(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	assert.Contains(t, FormatHistory(nil, now), "No generations recorded yet.")

	recs := []*domain.RenderRecord{
		testutil.NewTestRender(testutil.WithCreatedAt(now.Add(-2*time.Hour)), testutil.WithOutput("/srv/plans/plan.html", 2048)),
		testutil.NewTestRender(testutil.WithStatus(domain.RenderAborted), testutil.WithOutput("", 0)),
	}
	out := stripANSI(FormatHistory(recs, now))
	assert.Contains(t, out, recs[0].ID[:8])
	assert.NotContains(t, out, recs[0].ID)
	assert.Contains(t, out, "2h ago")
	assert.Contains(t, out, "PRINT")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "/srv/plans/plan.html")
	assert.Contains(t, out, "○ Aborted")
}

func TestFormatRecord(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	rec := testutil.NewTestRender(
		testutil.WithCreatedAt(now.Add(-30*time.Minute)),
		testutil.WithMissing("Vessel Details", "Operating Profile"),
	)
	out := stripANSI(FormatRecord(rec, now))
	assert.Contains(t, out, "GENERATION")
	assert.Contains(t, out, rec.ID)
	assert.Contains(t, out, "2026-03-14 11:30:00 UTC (30m ago)")
	assert.Contains(t, out, "● Completed")
	assert.Contains(t, out, "4.0 KiB")
	assert.Contains(t, out, "120ms")
	assert.Contains(t, out, "Vessel Details, Operating Profile")

	blank := stripANSI(FormatRecord(testutil.NewTestRender(testutil.WithOutput("", 0)), now))
	assert.Contains(t, blank, "none")
	assert.Contains(t, blank, "--")
}

func TestFormatSchema(t *testing.T) {
	out := stripANSI(FormatSchema(form.PlanSchema()))
	assert.Contains(t, out, form.FieldVesselName)
	assert.Contains(t, out, "afcProductName1…")
	assert.Contains(t, out, "checkbox")
	assert.Contains(t, out, "Generate Plan")
}

func TestFormatGenerateSummary(t *testing.T) {
	rec := testutil.NewTestRender(testutil.WithMissing("Vessel Details"), testutil.WithOutput("/tmp/plan.html", 1024))
	out := stripANSI(FormatGenerateSummary(rec, 2))
	assert.Contains(t, out, "PRINT written to /tmp/plan.html (1.0 KiB)")
	assert.Contains(t, out, "Placeholders inserted for: Vessel Details")
	assert.Contains(t, out, "2 image(s) could not be embedded")

	clean := stripANSI(FormatGenerateSummary(testutil.NewTestRender(testutil.WithOutput("", 10)), 0))
	assert.Contains(t, clean, "to stdout")
	assert.NotContains(t, clean, "!")
}

func TestFormatDocument(t *testing.T) {
	doc := report.Build(testutil.NewTestPlan(testutil.WithVessel("MV Example", "1234567")), report.Options{Now: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)})
	out := FormatDocument(doc, 80)
	text := stripANSI(out.Text)

	require.Len(t, out.SectionLines, len(doc.Sections))
	require.Len(t, out.SectionTitles, len(doc.Sections))
	lines := strings.Split(text, "\n")
	for i, s := range doc.Sections {
		assert.Equal(t, strings.ToUpper(s.Heading()), lines[out.SectionLines[i]])
		assert.Equal(t, s.Heading(), out.SectionTitles[i])
	}
	assert.Contains(t, text, "BIOFOULING MANAGEMENT PLAN")
	assert.Contains(t, text, "Vessel Name: MV Example")
	assert.Contains(t, text, "Index")
	assert.Contains(t, text, "© 2026")
}

func TestFormatDocument_RecordBookOnly(t *testing.T) {
	doc := report.Build(testutil.NewTestPlan(testutil.WithFormat(domain.FormatBFRBOnly)), report.Options{})
	out := FormatDocument(doc, 20)
	assert.Len(t, out.SectionLines, len(doc.Sections))
	assert.NotEmpty(t, out.Text)
}
