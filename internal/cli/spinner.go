package cli

import (
	"github.com/alexanderramin/bfmp/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type workDoneMsg struct{ err error }

// spinnerModel shows a spinner with a label until the work finishes.
type spinnerModel struct {
	spinner spinner.Model
	label   string
	done    bool
}

func newSpinnerModel(label string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	return spinnerModel{spinner: s, label: label}
}

func (m spinnerModel) Init() tea.Cmd { return m.spinner.Tick }

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		// Ctrl+C hides the spinner; the work still runs to completion.
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + formatter.Dim(m.label) + "\n"
}

// runWithSpinner runs fn while a spinner is drawn on the app's error stream.
func runWithSpinner(app *App, label string, fn func() error) error {
	p := tea.NewProgram(newSpinnerModel(label), tea.WithOutput(app.Err), tea.WithInput(nil))

	done := make(chan error, 1)
	go func() {
		err := fn()
		done <- err
		p.Send(workDoneMsg{err: err})
	}()

	// A failed program only loses the spinner.
	_, _ = p.Run()
	return <-done
}
