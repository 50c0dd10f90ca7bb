package form

import (
	"golang.org/x/text/unicode/norm"
)

// Accessor reads typed values out of a form Reader according to the schema.
// Every read is side-effect free and unknown identifiers read as the empty
// value: "" for text and locators, false for checkboxes, nil for file lists.
type Accessor struct {
	r      Reader
	schema Schema
}

// NewAccessor binds a reader to a schema.
func NewAccessor(r Reader, schema Schema) Accessor {
	return Accessor{r: r, schema: schema}
}

// Schema returns the schema the accessor resolves kinds against.
func (a Accessor) Schema() Schema { return a.schema }

// Text returns a text control's value in NFC form. File controls return
// their image locator.
func (a Accessor) Text(id string) string {
	f, ok := a.schema.Field(id)
	if !ok {
		return ""
	}
	switch f.Kind {
	case KindCheckbox, KindFiles:
		return ""
	case KindFile:
		return a.Image(id)
	}
	v, ok := a.r.Value(id)
	if !ok {
		return ""
	}
	return norm.NFC.String(v.Text)
}

// Checked returns a checkbox state.
func (a Accessor) Checked(id string) bool {
	f, ok := a.schema.Field(id)
	if !ok || f.Kind != KindCheckbox {
		return false
	}
	v, _ := a.r.Value(id)
	return v.Checked
}

// Image returns the locator of a single-file control, or "" when no file is
// selected or the file is not an image.
func (a Accessor) Image(id string) string {
	f, ok := a.schema.Field(id)
	if !ok || !f.Kind.IsFile() {
		return ""
	}
	v, ok := a.r.Value(id)
	if !ok || len(v.Files) == 0 {
		return ""
	}
	first := v.Files[0]
	if !first.IsImage() {
		return ""
	}
	return first.Locator
}

// Images returns the locators of a multi-file control's successfully loaded
// images, in selection order.
func (a Accessor) Images(id string) []string {
	f, ok := a.schema.Field(id)
	if !ok || f.Kind != KindFiles {
		return nil
	}
	v, ok := a.r.Value(id)
	if !ok {
		return nil
	}
	var out []string
	for _, file := range v.Files {
		if file.Loaded && file.IsImage() {
			out = append(out, file.Locator)
		}
	}
	return out
}

// Items returns the item count of a list.
func (a Accessor) Items(prefix string) int {
	return a.r.Items(prefix)
}

// ItemText reads one field of the pos-th item of a list.
func (a Accessor) ItemText(prefix, field string, pos int) string {
	return a.Text(ItemKey(prefix, field, pos))
}
