// Package report turns PlanData into a document model and writes that model
// as a self-contained HTML fragment.
package report

import "github.com/alexanderramin/bfmp/internal/domain"

// Part groups sections for format-controlled inclusion.
type Part int

const (
	PartBody Part = iota
	PartRecordBook
)

// Inline is a run of text inside a paragraph or cell. Placeholder runs carry
// guidance for a value that was left empty.
type Inline struct {
	Text        string
	Placeholder bool
	Strong      bool
}

// Block is one element of a section body.
type Block interface {
	isBlock()
}

// Heading is a numbered subsection heading (level 3) or an item heading
// (level 4).
type Heading struct {
	Level int
	Text  string
}

// Paragraph is a sequence of inline runs. Class is an optional CSS class.
type Paragraph struct {
	Parts []Inline
	Class string
}

// Cell is a table cell. Span > 1 widens a data cell across columns.
type Cell struct {
	Header bool
	Parts  []Inline
	Span   int
}

// Table is a details grid (Head empty) or a register with a header row.
type Table struct {
	Head []string
	Rows [][]Cell
}

// Image is a picture with an optional caption.
type Image struct {
	Src     string
	Alt     string
	Caption []Inline
	Class   string
}

// List is a bulleted list of plain text items.
type List struct {
	Items []string
}

// PlaceholderBlock explains that a whole repeated block has no entries.
type PlaceholderBlock struct {
	Text string
}

// Group is a titled sub-block such as one coating or one MGPS.
type Group struct {
	Class  string
	Title  string
	Blocks []Block
}

// SignatureBlock lists approval roles with blank signature and date lines.
type SignatureBlock struct {
	Rows []SignatureRow
}

type SignatureRow struct {
	Role string
	Name Inline
}

func (Heading) isBlock() {}
func (Paragraph) isBlock() {}
func (Table) isBlock() {}
func (Image) isBlock() {}
func (List) isBlock() {}
func (PlaceholderBlock) isBlock() {}
func (Group) isBlock() {}
func (SignatureBlock) isBlock() {}

// Section is a top-level report section. ID is both the body anchor and the
// table-of-contents target. Number is 0 for unnumbered sections.
type Section struct {
	ID     string
	Title  string
	Number int
	Part   Part
	Blocks []Block
}

// Heading returns the section heading as shown in the body.
func (s Section) Heading() string {
	if s.Number == 0 {
		return s.Title
	}
	return itoa(s.Number) + ". " + s.Title
}

// Cover is the optional title page shown when a cover photo is selected.
type Cover struct {
	Photo  string
	Title  string
	Vessel Inline
	IMO    Inline
	Date   string
}

// Header is the document header block.
type Header struct {
	Title    string
	Number   Inline
	Revision string
	Vessel   Inline
	IMO      Inline
	Date     string
	Logo     string
}

// TOCEntry links to a section anchor.
type TOCEntry struct {
	ID    string
	Title string
	// Number matches the section's body number; zero for the record book.
	Number int
}

// Label is the entry text with the body number, when there is one.
func (e TOCEntry) Label() string {
	if e.Number == 0 {
		return e.Title
	}
	return itoa(e.Number) + ". " + e.Title
}

// Document is the complete report model. Sections are already filtered by
// Format and TOC is derived from the same list.
type Document struct {
	Format   domain.PlanFormat
	Cover    *Cover
	Header   Header
	TOC      []TOCEntry
	Sections []Section
	Footer   []string
}

// SectionIDs returns the body anchors in document order.
func (d Document) SectionIDs() []string {
	ids := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		ids = append(ids, s.ID)
	}
	return ids
}

// HasPart reports whether any section of part p is present.
func (d Document) HasPart(p Part) bool {
	for _, s := range d.Sections {
		if s.Part == p {
			return true
		}
	}
	return false
}
