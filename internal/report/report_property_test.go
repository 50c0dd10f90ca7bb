//go:build property
// +build property

package report

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestRenderProperties checks rendering invariants over generated plans.
func TestRenderProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	opts := Options{Now: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}

	formats := gen.OneConstOf(domain.FormatFullPlan, domain.FormatBFMPOnly, domain.FormatBFRBOnly, domain.PlanFormat(""), domain.PlanFormat("Other"))

	properties.Property("rendering is deterministic", prop.ForAll(
		func(name, imo string, products []string, f domain.PlanFormat) bool {
			p := planFrom(name, imo, products, f)
			return Render(p, opts) == Render(p, opts)
		},
		gen.AlphaString(), gen.NumString(), gen.SliceOf(gen.AlphaString()), formats,
	))

	properties.Property("table of contents matches body anchors", prop.ForAll(
		func(f domain.PlanFormat) bool {
			doc := Build(domain.PlanData{Document: domain.DocumentMeta{Format: f}}, opts)
			out := HTML(doc)
			for _, e := range doc.TOC {
				if !strings.Contains(out, `<h2 id="`+e.ID+`">`) {
					return false
				}
			}
			return len(doc.TOC) == len(doc.Sections)
		},
		formats,
	))

	properties.Property("one coating block per entry or exactly one placeholder", prop.ForAll(
		func(products []string) bool {
			out := Render(planFrom("", "", products, domain.FormatFullPlan), opts)
			blocks := strings.Count(out, `<div class="afs-section">`)
			placeholders := strings.Count(out, NoCoatingsText)
			if len(products) == 0 {
				return blocks == 0 && placeholders == 1
			}
			return blocks == len(products) && placeholders == 0
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("blank vessel name is always a placeholder", prop.ForAll(
		func(spaces int) bool {
			doc := Build(domain.PlanData{Vessel: domain.VesselParticulars{Name: strings.Repeat(" ", spaces)}}, opts)
			return doc.Header.Vessel.Placeholder
		},
		gen.IntRange(0, 8),
	))

	properties.TestingRun(t)
}

func planFrom(name, imo string, products []string, f domain.PlanFormat) domain.PlanData {
	p := domain.PlanData{
		Vessel:   domain.VesselParticulars{Name: name, IMO: imo},
		Document: domain.DocumentMeta{Format: f},
	}
	for _, prod := range products {
		p.Coatings = append(p.Coatings, domain.AFCEntry{ProductName: prod, Type: "SPC"})
	}
	return p
}
