package report

import (
	"fmt"
	"time"

	"github.com/alexanderramin/bfmp/internal/domain"
)

const (
	DefaultTitle        = "Biofouling Management Plan"
	DefaultDateLayout   = "2 January 2006"
	DefaultOrganisation = "MarineStream Tools"
)

// Options control the parts of the output that do not come from PlanData.
type Options struct {
	// Now stamps the header, cover and footer. Zero means time.Now.
	Now          time.Time
	DateLayout   string
	Organisation string
}

func (o Options) withDefaults() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.DateLayout == "" {
		o.DateLayout = DefaultDateLayout
	}
	if o.Organisation == "" {
		o.Organisation = DefaultOrganisation
	}
	return o
}

// Build assembles the report model for data. It never fails: every empty or
// malformed value becomes a placeholder.
func Build(data domain.PlanData, opts Options) Document {
	opts = opts.withDefaults()
	format := domain.ParsePlanFormat(string(data.Document.Format))
	stamp := opts.Now.Format(opts.DateLayout)
	title := domain.CoalesceStr(data.Document.Title, DefaultTitle)

	doc := Document{
		Format: format,
		Header: Header{
			Title:    title,
			Number:   value(data.Document.Number, "Enter a document identifier for reference"),
			Revision: "Rev " + domain.CoalesceStr(data.Document.Revision, "0"),
			Vessel:   value(data.Vessel.Name, "Enter vessel name"),
			IMO:      value(data.Vessel.IMO, "Enter IMO number"),
			Date:     stamp,
			Logo:     data.Document.CompanyLogo,
		},
		Footer: []string{
			"This Biofouling Management Plan was generated using the standalone BFMP generator.",
			fmt.Sprintf("© %d %s", opts.Now.Year(), opts.Organisation),
		},
	}
	if !domain.IsBlank(data.Document.CoverPhoto) {
		doc.Cover = &Cover{
			Photo:  data.Document.CoverPhoto,
			Title:  title,
			Vessel: doc.Header.Vessel,
			IMO:    doc.Header.IMO,
			Date:   stamp,
		}
	}

	number := 0
	for _, def := range registry {
		if !def.include(format) {
			continue
		}
		sec := Section{ID: def.id, Title: def.title, Part: def.part}
		if def.part == PartBody {
			number++
			sec.Number = number
		}
		b := &builder{data: data, opts: opts, number: sec.Number}
		sec.Blocks = def.build(b)
		doc.Sections = append(doc.Sections, sec)
		doc.TOC = append(doc.TOC, TOCEntry{ID: def.id, Title: domain.CoalesceStr(def.toc, def.title), Number: sec.Number})
	}
	return doc
}

// Render builds and writes the HTML fragment in one step.
func Render(data domain.PlanData, opts Options) string {
	return HTML(Build(data, opts))
}

// sectionDef declares one section of the report. include decides presence
// from the plan format, so body and table of contents cannot disagree.
type sectionDef struct {
	id    string
	title string
	toc   string
	part  Part
	build func(b *builder) []Block
}

func (s sectionDef) include(f domain.PlanFormat) bool {
	if s.part == PartRecordBook {
		return f.IncludesRecordBook()
	}
	return f.IncludesPlanBody()
}

// builder carries per-section state into section builders.
type builder struct {
	data   domain.PlanData
	opts   Options
	number int
}

// sub returns the k-th numbered subsection heading of the current section.
func (b *builder) sub(k int, title string) Heading {
	if b.number == 0 {
		return Heading{Level: 3, Text: title}
	}
	return Heading{Level: 3, Text: fmt.Sprintf("%d.%d %s", b.number, k, title)}
}

func (b *builder) date(raw, guidance string) Inline {
	return date(raw, b.opts.DateLayout, guidance)
}
