package form

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

var (
	ErrUnknownList = errors.New("unknown list")
	ErrItemRange   = errors.New("item position out of range")
	ErrLastItem    = errors.New("cannot remove the last remaining item")
)

// File is one selected file. Loaded is true when the content was read and
// decoded as an image, mirroring what a preview surface would show.
type File struct {
	Name      string
	MediaType string
	Locator   string
	Loaded    bool
}

// IsImage reports whether the file's media type is image/*.
func (f File) IsImage() bool {
	return strings.HasPrefix(f.MediaType, "image/")
}

// Path returns the filesystem path behind a file:// locator. Other locators
// are returned unchanged.
func (f File) Path() string {
	u, err := url.Parse(f.Locator)
	if err != nil || u.Scheme != "file" {
		return f.Locator
	}
	return u.Path
}

// Value is the raw content of one control.
type Value struct {
	Text    string
	Checked bool
	Files   []File
}

// Reader is read access to form values and list item counts.
type Reader interface {
	Value(id string) (Value, bool)
	Items(prefix string) int
}

// State is an immutable snapshot of the form. The zero value is an empty
// form with no list items.
type State struct {
	values map[string]Value
	items  map[string]int
}

var _ Reader = State{}

func (s State) Value(id string) (Value, bool) {
	v, ok := s.values[id]
	return v, ok
}

func (s State) Items(prefix string) int {
	return s.items[prefix]
}

// IDs returns every identifier holding a value, sorted.
func (s State) IDs() []string {
	ids := make([]string, 0, len(s.values))
	for id := range s.values {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Builder assembles a State. It owns the list mutation rules: lists start
// with one item, removal renumbers later items contiguously from 1 and the
// last remaining item cannot be removed.
type Builder struct {
	schema Schema
	values map[string]Value
	items  map[string]int
}

// NewBuilder returns a builder with every declared list holding one item.
func NewBuilder(schema Schema) *Builder {
	b := &Builder{schema: schema, values: map[string]Value{}, items: map[string]int{}}
	for _, l := range schema.Lists {
		b.items[l.Prefix] = 1
	}
	return b
}

func (b *Builder) SetText(id, text string) {
	v := b.values[id]
	v.Text = text
	b.values[id] = v
}

func (b *Builder) SetChecked(id string, checked bool) {
	v := b.values[id]
	v.Checked = checked
	b.values[id] = v
}

func (b *Builder) SetFiles(id string, files ...File) {
	v := b.values[id]
	v.Files = append([]File(nil), files...)
	b.values[id] = v
}

// SetItemText sets field of the pos-th item of a list.
func (b *Builder) SetItemText(prefix string, pos int, field, text string) error {
	n, ok := b.items[prefix]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownList, prefix)
	}
	if pos < 1 || pos > n {
		return fmt.Errorf("%s item %d: %w", prefix, pos, ErrItemRange)
	}
	b.SetText(ItemKey(prefix, field, pos), text)
	return nil
}

// Items returns the current item count of a list.
func (b *Builder) Items(prefix string) int {
	return b.items[prefix]
}

// AppendItem adds a blank item at the end of a list and returns its position.
func (b *Builder) AppendItem(prefix string) (int, error) {
	l, ok := b.schema.List(prefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownList, prefix)
	}
	b.items[prefix]++
	pos := b.items[prefix]
	for _, f := range l.Fields {
		delete(b.values, ItemKey(prefix, f.ID, pos))
	}
	return pos, nil
}

// RemoveItem deletes the pos-th item and shifts later items down by one.
func (b *Builder) RemoveItem(prefix string, pos int) error {
	l, ok := b.schema.List(prefix)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownList, prefix)
	}
	n := b.items[prefix]
	if pos < 1 || pos > n {
		return fmt.Errorf("%s item %d: %w", prefix, pos, ErrItemRange)
	}
	if n == 1 {
		return ErrLastItem
	}
	for i := pos; i < n; i++ {
		for _, f := range l.Fields {
			next, ok := b.values[ItemKey(prefix, f.ID, i+1)]
			if ok {
				b.values[ItemKey(prefix, f.ID, i)] = next
			} else {
				delete(b.values, ItemKey(prefix, f.ID, i))
			}
		}
	}
	for _, f := range l.Fields {
		delete(b.values, ItemKey(prefix, f.ID, n))
	}
	b.items[prefix] = n - 1
	return nil
}

// State returns an immutable copy of the builder's current values.
func (b *Builder) State() State {
	values := make(map[string]Value, len(b.values))
	for k, v := range b.values {
		v.Files = append([]File(nil), v.Files...)
		values[k] = v
	}
	items := make(map[string]int, len(b.items))
	for k, n := range b.items {
		items[k] = n
	}
	return State{values: values, items: items}
}
