package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/bfmp/internal/domain"
)

// value is the single placeholder rule: a blank value becomes a placeholder
// run carrying guidance, anything else is used verbatim.
func value(v, guidance string) Inline {
	if domain.IsBlank(v) {
		return Inline{Text: guidance, Placeholder: true}
	}
	return Inline{Text: v}
}

// withUnit appends unit to a non-empty value.
func withUnit(v, unit, guidance string) Inline {
	in := value(v, guidance)
	if !in.Placeholder {
		in.Text = strings.TrimSpace(in.Text) + " " + unit
	}
	return in
}

// inputDateLayouts are tried in order when reading a date field.
var inputDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
	"2 January 2006",
}

// parseDate reads raw with the accepted input layouts.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// date reformats raw with layout; an absent or unparsable date is a
// placeholder.
func date(raw, layout, guidance string) Inline {
	t, ok := parseDate(raw)
	if !ok {
		return Inline{Text: guidance, Placeholder: true}
	}
	return Inline{Text: t.Format(layout)}
}

func text(s string) Inline { return Inline{Text: s} }
func strong(s string) Inline { return Inline{Text: s, Strong: true} }

func para(parts ...Inline) Paragraph { return Paragraph{Parts: parts} }

func itoa(n int) string { return strconv.Itoa(n) }
