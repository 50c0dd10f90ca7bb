package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlanFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want PlanFormat
	}{
		{raw: "Full Plan", want: FormatFullPlan},
		{raw: "BFMP Only", want: FormatBFMPOnly},
		{raw: "BFRB Only", want: FormatBFRBOnly},
		{raw: "", want: FormatFullPlan},
		{raw: "bfmp only", want: FormatFullPlan},
		{raw: "Summary", want: FormatFullPlan},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ParsePlanFormat(tc.raw))
		})
	}
}

func TestPlanFormat_Inclusion(t *testing.T) {
	assert.True(t, FormatFullPlan.IncludesPlanBody())
	assert.True(t, FormatFullPlan.IncludesRecordBook())
	assert.True(t, FormatBFMPOnly.IncludesPlanBody())
	assert.False(t, FormatBFMPOnly.IncludesRecordBook())
	assert.False(t, FormatBFRBOnly.IncludesPlanBody())
	assert.True(t, FormatBFRBOnly.IncludesRecordBook())
}

func TestParseRenderTarget(t *testing.T) {
	got, ok := ParseRenderTarget(" PDF ")
	assert.True(t, ok)
	assert.Equal(t, TargetPDF, got)

	_, ok = ParseRenderTarget("docx")
	assert.False(t, ok)
}

func TestParseRenderStatus(t *testing.T) {
	got, ok := ParseRenderStatus("Aborted")
	assert.True(t, ok)
	assert.Equal(t, RenderAborted, got)

	_, ok = ParseRenderStatus("pending")
	assert.False(t, ok)
}

func TestEntryIsEmpty(t *testing.T) {
	assert.True(t, AFCEntry{}.IsEmpty())
	assert.True(t, AFCEntry{Manufacturer: "   "}.IsEmpty())
	assert.False(t, AFCEntry{ProductName: "Coating B"}.IsEmpty())
	assert.True(t, MGPSEntry{}.IsEmpty())
	assert.False(t, MGPSEntry{Manual: "Engine room"}.IsEmpty())
}

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "  ", "b", "c"))
	assert.Equal(t, "", CoalesceStr("", " "))
}
