// Package form defines the plan form contract: the field identifiers each
// section exposes, the immutable form state read by the collector, and the
// accessor that maps raw control values to typed plan values.
package form

import (
	"strconv"
	"strings"
)

// Kind is the control type behind a field identifier.
type Kind int

const (
	KindText Kind = iota
	KindTextArea
	KindDate
	KindSelect
	KindCheckbox
	KindFile
	KindFiles
)

func (k Kind) String() string {
	switch k {
	case KindTextArea:
		return "textarea"
	case KindDate:
		return "date"
	case KindSelect:
		return "select"
	case KindCheckbox:
		return "checkbox"
	case KindFile:
		return "file"
	case KindFiles:
		return "files"
	default:
		return "text"
	}
}

// IsFile reports whether the control holds file references.
func (k Kind) IsFile() bool { return k == KindFile || k == KindFiles }

// Section is one wizard tab. Presence validation reports missing fields by
// section label.
type Section struct {
	ID    string
	Label string
}

// Field declares one control. For list fields ID is the bare field name
// (e.g. "ProductName") and the per-item key is built with ItemKey.
type Field struct {
	ID       string
	Label    string
	Section  string
	Kind     Kind
	Required bool
	Options  []string
}

// List declares a repeatable group of fields such as the AFC entries.
type List struct {
	Prefix  string
	Label   string
	Section string
	Fields  []Field
}

// Schema is the complete form contract.
type Schema struct {
	Sections []Section
	Fields   []Field
	Lists    []List
}

// ItemKey returns the identifier of field in the pos-th (1-based) item of the
// list with the given prefix, e.g. ItemKey("afc", "ProductName", 2) ==
// "afcProductName2".
func ItemKey(prefix, field string, pos int) string {
	return prefix + field + strconv.Itoa(pos)
}

// Field looks up a scalar field or a list item key.
func (s Schema) Field(id string) (Field, bool) {
	for _, f := range s.Fields {
		if f.ID == id {
			return f, true
		}
	}
	if l, name, _, ok := s.splitItemKey(id); ok {
		for _, f := range l.Fields {
			if f.ID == name {
				return f, true
			}
		}
	}
	return Field{}, false
}

// List returns the list declared with prefix.
func (s Schema) List(prefix string) (List, bool) {
	for _, l := range s.Lists {
		if l.Prefix == prefix {
			return l, true
		}
	}
	return List{}, false
}

// SectionFields returns the scalar fields of a section in declaration order.
func (s Schema) SectionFields(sectionID string) []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.Section == sectionID {
			out = append(out, f)
		}
	}
	return out
}

// SectionLists returns the lists of a section in declaration order.
func (s Schema) SectionLists(sectionID string) []List {
	var out []List
	for _, l := range s.Lists {
		if l.Section == sectionID {
			out = append(out, l)
		}
	}
	return out
}

// splitItemKey parses "afcProductName2" into the afc list, "ProductName"
// and 2.
func (s Schema) splitItemKey(id string) (List, string, int, bool) {
	for _, l := range s.Lists {
		if !strings.HasPrefix(id, l.Prefix) {
			continue
		}
		rest := id[len(l.Prefix):]
		end := len(rest)
		for end > 0 && rest[end-1] >= '0' && rest[end-1] <= '9' {
			end--
		}
		if end == len(rest) || end == 0 {
			continue
		}
		pos, err := strconv.Atoi(rest[end:])
		if err != nil || pos < 1 {
			continue
		}
		return l, rest[:end], pos, true
	}
	return List{}, "", 0, false
}

// FindField looks a list field up by case-insensitive name, so snapshot
// files may write "productName" for "ProductName".
func (l List) FindField(name string) (Field, bool) {
	for _, f := range l.Fields {
		if strings.EqualFold(f.ID, name) {
			return f, true
		}
	}
	return Field{}, false
}
