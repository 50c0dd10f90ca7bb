package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinePrompt_Confirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{name: "y", input: "y\n", want: true},
		{name: "yes mixed case", input: "YeS\n", want: true},
		{name: "carriage return", input: "yes\r", want: true},
		{name: "padded", input: "  y  \n", want: true},
		{name: "empty takes no", input: "\n", want: false},
		{name: "empty takes yes", input: "\n", defaultYes: true, want: true},
		{name: "explicit no beats default", input: "n\n", defaultYes: true, want: false},
		{name: "gibberish is no", input: "sure\n", defaultYes: true, want: false},
		{name: "closed input", input: "", defaultYes: true, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			p := linePrompt{in: strings.NewReader(tc.input), out: &out}
			assert.Equal(t, tc.want, p.confirm("Insert placeholders?", tc.defaultYes))
		})
	}
}

func TestLinePrompt_Hint(t *testing.T) {
	var out bytes.Buffer
	linePrompt{in: strings.NewReader("\n"), out: &out}.confirm("Overwrite plan.yaml?", false)
	assert.Equal(t, "Overwrite plan.yaml? [y/N]: ", out.String())

	out.Reset()
	linePrompt{in: strings.NewReader("\n"), out: &out}.confirm("Open it?", true)
	assert.Equal(t, "Open it? [Y/n]: ", out.String())
}

func TestReadAnswer(t *testing.T) {
	t.Parallel()

	got, err := readAnswer(strings.NewReader("yes"))
	assert.NoError(t, err)
	assert.Equal(t, "yes", got)

	r := strings.NewReader("y\nrest")
	got, err = readAnswer(r)
	assert.NoError(t, err)
	assert.Equal(t, "y", got)
	assert.Equal(t, 4, r.Len(), "bytes after the newline stay unread")

	_, err = readAnswer(nil)
	assert.Error(t, err)
}
