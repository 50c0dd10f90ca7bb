// Package presence checks that the form's required fields hold a value and
// lets the caller decide what happens when some do not.
package presence

import (
	"strings"

	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/alexanderramin/bfmp/internal/form"
)

// Result lists the labels of sections with at least one empty required
// field, in section declaration order. Each label appears once.
type Result struct {
	Missing []string
}

// Valid reports whether every required field holds a value.
func (r Result) Valid() bool { return len(r.Missing) == 0 }

// Summary joins the missing section labels for display.
func (r Result) Summary() string { return strings.Join(r.Missing, ", ") }

// Check scans every section of schema for required fields with no value.
// A file field is empty when no file is selected; any other field is empty
// when its trimmed text is. Required list fields are checked in every
// present item. r is only read.
func Check(r form.Reader, schema form.Schema) Result {
	var res Result
	for _, sec := range schema.Sections {
		if sectionIncomplete(r, schema, sec.ID) {
			res.Missing = append(res.Missing, sec.Label)
		}
	}
	return res
}

// Fields returns the identifiers of every empty required field, grouped by
// section label. It backs the detailed validate report.
func Fields(r form.Reader, schema form.Schema) map[string][]string {
	out := map[string][]string{}
	for _, sec := range schema.Sections {
		for _, f := range schema.SectionFields(sec.ID) {
			if f.Required && empty(r, f, f.ID) {
				out[sec.Label] = append(out[sec.Label], f.ID)
			}
		}
		for _, l := range schema.SectionLists(sec.ID) {
			for pos := 1; pos <= r.Items(l.Prefix); pos++ {
				for _, f := range l.Fields {
					id := form.ItemKey(l.Prefix, f.ID, pos)
					if f.Required && empty(r, f, id) {
						out[sec.Label] = append(out[sec.Label], id)
					}
				}
			}
		}
	}
	return out
}

func sectionIncomplete(r form.Reader, schema form.Schema, sectionID string) bool {
	for _, f := range schema.SectionFields(sectionID) {
		if f.Required && empty(r, f, f.ID) {
			return true
		}
	}
	for _, l := range schema.SectionLists(sectionID) {
		for pos := 1; pos <= r.Items(l.Prefix); pos++ {
			for _, f := range l.Fields {
				if f.Required && empty(r, f, form.ItemKey(l.Prefix, f.ID, pos)) {
					return true
				}
			}
		}
	}
	return false
}

func empty(r form.Reader, f form.Field, id string) bool {
	v, ok := r.Value(id)
	if !ok {
		return true
	}
	if f.Kind.IsFile() {
		return len(v.Files) == 0
	}
	if f.Kind == form.KindCheckbox {
		return !v.Checked
	}
	return domain.IsBlank(v.Text)
}
