package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alexanderramin/bfmp/internal/report"
	"github.com/alexanderramin/bfmp/internal/teatest"
	"github.com/alexanderramin/bfmp/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() report.Document {
	return report.Build(testutil.NewTestPlan(testutil.WithVessel("MV Example", "1234567")), report.Options{})
}

func viewer(d *teatest.Driver) viewerModel {
	return d.Model.(viewerModel)
}

func TestViewer_LoadingUntilSized(t *testing.T) {
	d := teatest.New(t, newViewerModel(testDocument()))
	d.DrainInit()
	assert.Equal(t, "Loading plan...", d.View())
}

func TestViewer_ShowsHeaderAndStatusBar(t *testing.T) {
	doc := testDocument()
	d := teatest.New(t, newViewerModel(doc), teatest.WithSize(100, 20))
	d.DrainInit()

	view := d.PlainView()
	assert.Contains(t, view, strings.ToUpper(doc.Header.Title))
	assert.Contains(t, view, "MV Example")
	assert.Contains(t, view, "[TOP]")
	assert.Contains(t, view, "n: next section")
}

func TestViewer_SectionNavigation(t *testing.T) {
	d := teatest.New(t, newViewerModel(testDocument()), teatest.WithSize(100, 20))
	d.DrainInit()
	rendered := viewer(d).rendered
	require.GreaterOrEqual(t, len(rendered.SectionLines), 3)
	assert.Equal(t, -1, viewer(d).currentSection())

	d.PressKey('n')
	assert.Equal(t, rendered.SectionLines[0], viewer(d).vp.YOffset)
	assert.Equal(t, 0, viewer(d).currentSection())
	assert.Contains(t, d.PlainView(), rendered.SectionTitles[0])

	d.PressKey('n')
	assert.Equal(t, 1, viewer(d).currentSection())
	assert.Contains(t, d.PlainView(), rendered.SectionTitles[1])

	d.PressKey('p')
	assert.Equal(t, 0, viewer(d).currentSection())

	d.PressKey('p')
	assert.Equal(t, 0, viewer(d).vp.YOffset)
	assert.Equal(t, -1, viewer(d).currentSection())
}

func TestViewer_TabKeysJumpSections(t *testing.T) {
	d := teatest.New(t, newViewerModel(testDocument()), teatest.WithSize(100, 20))
	d.DrainInit()

	d.PressType(tea.KeyTab)
	d.PressType(tea.KeyTab)
	assert.Equal(t, 1, viewer(d).currentSection())

	d.PressType(tea.KeyShiftTab)
	assert.Equal(t, 0, viewer(d).currentSection())
}

func TestViewer_ScrollKeysMoveViewport(t *testing.T) {
	d := teatest.New(t, newViewerModel(testDocument()), teatest.WithSize(100, 20))
	d.DrainInit()

	d.PressDown()
	d.PressDown()
	assert.Equal(t, 2, viewer(d).vp.YOffset)

	d.PressUp()
	assert.Equal(t, 1, viewer(d).vp.YOffset)
}

func TestViewer_ResizeKeepsContent(t *testing.T) {
	d := teatest.New(t, newViewerModel(testDocument()), teatest.WithSize(100, 20))
	d.DrainInit()

	d.Resize(60, 30)
	m := viewer(d)
	assert.Equal(t, 60, m.vp.Width)
	assert.Equal(t, 28, m.vp.Height)
	assert.NotEmpty(t, m.rendered.SectionLines)
}

func TestViewer_QuitKeys(t *testing.T) {
	tests := []struct {
		name  string
		press func(d *teatest.Driver)
	}{
		{name: "q", press: func(d *teatest.Driver) { d.PressKey('q') }},
		{name: "esc", press: func(d *teatest.Driver) { d.PressEsc() }},
		{name: "ctrl+c", press: func(d *teatest.Driver) { d.PressCtrlC() }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := teatest.New(t, newViewerModel(testDocument()), teatest.WithSize(100, 20))
			d.DrainInit()
			tc.press(d)
			assert.True(t, d.Quitting)
		})
	}
}

func TestSpinner_ShowsLabelUntilDone(t *testing.T) {
	d := teatest.New(t, newSpinnerModel("Generating print output..."))
	d.DrainInit()
	assert.Contains(t, d.PlainView(), "Generating print output...")

	d.Send(workDoneMsg{})
	assert.True(t, d.Quitting)
	assert.Empty(t, d.View())
}

func TestRunWithSpinner_ReturnsWorkError(t *testing.T) {
	boom := errors.New("boom")
	app := &App{Err: new(bytes.Buffer)}

	err := runWithSpinner(app, "working", func() error { return boom })
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, runWithSpinner(app, "working", func() error { return nil }))
}
