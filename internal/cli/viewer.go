package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/bfmp/internal/cli/formatter"
	"github.com/alexanderramin/bfmp/internal/report"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type viewerKeyMap struct {
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

func newViewerKeyMap() viewerKeyMap {
	return viewerKeyMap{
		Next: key.NewBinding(key.WithKeys("n", "tab"), key.WithHelp("n", "next section")),
		Prev: key.NewBinding(key.WithKeys("p", "shift+tab"), key.WithHelp("p", "prev section")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// viewerModel shows a rendered plan in a scrollable viewport with
// section-to-section navigation.
type viewerModel struct {
	doc      report.Document
	rendered formatter.RenderedDocument
	vp       viewport.Model
	keys     viewerKeyMap
	width    int
	ready    bool
}

func newViewerModel(doc report.Document) viewerModel {
	return viewerModel{doc: doc, keys: newViewerKeyMap()}
}

func (m viewerModel) Init() tea.Cmd { return nil }

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := max(msg.Height-2, 1)
		m.rendered = formatter.FormatDocument(m.doc, msg.Width-2)
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = height
		}
		m.vp.SetContent(m.rendered.Text)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.jump(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.jump(-1)
			return m, nil
		}
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// currentSection returns the index of the section containing the top line,
// or -1 above the first section.
func (m viewerModel) currentSection() int {
	cur := -1
	for i, line := range m.rendered.SectionLines {
		if line <= m.vp.YOffset {
			cur = i
		}
	}
	return cur
}

func (m *viewerModel) jump(dir int) {
	if !m.ready || len(m.rendered.SectionLines) == 0 {
		return
	}
	lines := m.rendered.SectionLines
	if dir > 0 {
		for _, line := range lines {
			if line > m.vp.YOffset {
				m.vp.SetYOffset(line)
				return
			}
		}
		return
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i] < m.vp.YOffset {
			m.vp.SetYOffset(lines[i])
			return
		}
	}
	m.vp.GotoTop()
}

func (m viewerModel) View() string {
	if !m.ready {
		return "Loading plan..."
	}
	return m.vp.View() + "\n" + m.statusBar()
}

func (m viewerModel) statusBar() string {
	title := m.doc.Header.Title
	if i := m.currentSection(); i >= 0 {
		title = m.rendered.SectionTitles[i]
	}
	hints := []string{
		formatter.Bold(formatter.Truncate(title, 48)),
		scrollIndicator(m.vp),
	}
	for _, b := range []key.Binding{m.keys.Next, m.keys.Prev, m.keys.Quit} {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}
	hints = append(hints, formatter.Dim("↑↓ pgup/pgdn: scroll"))

	sep := lipgloss.NewStyle().Foreground(formatter.ColorDim).Render(strings.Repeat("─", max(m.width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}

// scrollIndicator returns a dim scroll position string for the status bar.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	pct := int(vp.ScrollPercent() * 100)
	return formatter.Dim(fmt.Sprintf("[%d%%]", pct))
}

// runViewer shows doc full-screen until the user quits.
func runViewer(doc report.Document) error {
	_, err := tea.NewProgram(newViewerModel(doc), tea.WithAltScreen()).Run()
	return err
}
