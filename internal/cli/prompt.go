package cli

import (
	"fmt"
	"io"
	"strings"
)

// linePrompt asks yes/no questions on plain streams. It backs the
// confirmation when huh cannot take over the terminal.
type linePrompt struct {
	in  io.Reader
	out io.Writer
}

// confirm prints question with a [y/N] or [Y/n] hint and reads one answer.
// An empty answer takes the default; anything but y or yes is a no.
func (p linePrompt) confirm(question string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	if p.out != nil {
		fmt.Fprintf(p.out, "%s %s: ", question, hint)
	}

	answer, err := readAnswer(p.in)
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	default:
		return false
	}
}

// readAnswer reads up to LF or CR so Enter works in cooked and raw mode.
// Input is read a byte at a time to leave the rest of stdin untouched.
func readAnswer(in io.Reader) (string, error) {
	if in == nil {
		return "", io.EOF
	}

	var line []byte
	var b [1]byte
	for {
		n, err := in.Read(b[:])
		if n > 0 {
			if b[0] == '\n' || b[0] == '\r' {
				return string(line), nil
			}
			line = append(line, b[0])
		}
		if err != nil {
			if err == io.EOF && len(line) > 0 {
				return string(line), nil
			}
			return string(line), err
		}
	}
}
