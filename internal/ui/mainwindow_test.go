package ui

import (
	"os"
	"path/filepath"
	"templed/internal/data"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testWindow struct {
	*MainWindow
	session *data.Session
	gateway *data.JSONFile
	copied  []string
}

func newTestWindow(t *testing.T, items ...string) *testWindow {
	t.Helper()
	g := data.NewJSONFile(t.TempDir())
	if len(items) > 0 {
		require.NoError(t, g.Save(items))
	}
	return openTestWindow(t, g)
}

func openTestWindow(t *testing.T, g *data.JSONFile) *testWindow {
	t.Helper()
	s := data.OpenSession(g)
	tw := &testWindow{session: s, gateway: g}
	tw.MainWindow = NewMainWindow(s, data.ThemeDark)
	tw.SetClipboard(func(text string) error {
		tw.copied = append(tw.copied, text)
		return nil
	})
	tw.Init()
	return tw
}

func (tw *testWindow) press(p tview.Primitive, event *tcell.EventKey) {
	p.InputHandler()(event, func(p tview.Primitive) { tw.SetFocus(p) })
}

func (tw *testWindow) saved(t *testing.T) []string {
	t.Helper()
	return data.NewJSONFile(tw.gateway.Location()).Load()
}

func texts(s *data.Session) []string {
	out := []string{}
	for _, t := range s.Templates() {
		out = append(out, t.Text)
	}
	return out
}

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func char(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func TestMainWindowInit(t *testing.T) {
	t.Run("shows data directory and first template", func(t *testing.T) {
		tw := newTestWindow(t, "Hello,\nworld", "Bye")

		assert.Contains(t, tw.header.GetText(true), "The data is saved here: "+tw.gateway.Location())
		assert.Equal(t, 2, tw.OrganizerWidget().TemplateCount())
		assert.True(t, tw.EditorWidget().Editing(0))
		assert.Equal(t, "Hello,\nworld", tw.EditorWidget().GetText())
	})

	t.Run("empty list", func(t *testing.T) {
		tw := newTestWindow(t)
		assert.Equal(t, 0, tw.OrganizerWidget().TemplateCount())
		assert.Contains(t, tw.Status(), "press Enter to add it")
		assert.Empty(t, tw.EditorWidget().GetText())
	})

	t.Run("no data directory", func(t *testing.T) {
		tw := openTestWindow(t, data.NewJSONFile(""))
		assert.Equal(t, "Unable to locate a place to save data to", tw.header.GetText(true))
		assert.Equal(t, "Templates will not be saved", tw.Status())

		tw.inputField.SetText("kept")
		tw.press(tw.inputField, key(tcell.KeyEnter))
		assert.Equal(t, []string{"kept"}, texts(tw.session))
		assert.Equal(t, "Added template (in memory only)", tw.Status())
	})
}

func TestMainWindowAddTemplate(t *testing.T) {
	tw := newTestWindow(t, "first")

	tw.SetFocus(tw.inputField)
	tw.inputField.SetText("hello")
	tw.press(tw.inputField, key(tcell.KeyEnter))

	assert.Equal(t, []string{"first", "hello"}, texts(tw.session))
	assert.Equal(t, []string{"first", "hello"}, tw.saved(t))
	assert.Empty(t, tw.inputField.GetText())
	assert.Equal(t, "Added template", tw.Status())

	current, ok := tw.OrganizerWidget().CurrentTemplate()
	require.True(t, ok)
	assert.Equal(t, data.ID(1), current.ID)
	assert.True(t, tw.EditorWidget().Editing(1))

	t.Run("empty input still adds, like pressing +", func(t *testing.T) {
		tw.press(tw.inputField, key(tcell.KeyEnter))
		assert.Equal(t, []string{"first", "hello", ""}, tw.saved(t))
	})

	t.Run("escape leaves the input", func(t *testing.T) {
		tw.SetFocus(tw.inputField)
		tw.press(tw.inputField, key(tcell.KeyESC))
		assert.Equal(t, tview.Primitive(tw.OrganizerWidget()), tw.GetFocus())
	})
}

func TestMainWindowSaveFailure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	tw := openTestWindow(t, data.NewJSONFile(filepath.Join(blocker, data.AppDirName)))
	tw.inputField.SetText("draft")
	tw.press(tw.inputField, key(tcell.KeyEnter))

	assert.Equal(t, []string{"draft"}, texts(tw.session))
	assert.Contains(t, tw.Status(), "Not saved:")
	assert.Error(t, tw.session.LastError())
}

func TestMainWindowGlobalKeys(t *testing.T) {
	tw := newTestWindow(t, "one", "two")

	t.Run("ctrl-y copies the data directory", func(t *testing.T) {
		assert.Nil(t, tw.HandleEvent(key(tcell.KeyCtrlY)))
		assert.Equal(t, []string{tw.gateway.Location()}, tw.copied)
		assert.Equal(t, "Copied data directory to clipboard", tw.Status())
	})

	t.Run("ctrl-c copies instead of quitting", func(t *testing.T) {
		tw.copied = nil
		tw.SetFocus(tw.OrganizerWidget())
		assert.Nil(t, tw.HandleEvent(key(tcell.KeyCtrlC)))
		assert.Equal(t, []string{"one"}, tw.copied)
	})

	t.Run("ctrl-n and ctrl-e move focus", func(t *testing.T) {
		tw.HandleEvent(key(tcell.KeyCtrlN))
		assert.Equal(t, tview.Primitive(tw.inputField), tw.GetFocus())

		tw.HandleEvent(key(tcell.KeyCtrlE))
		assert.Equal(t, tview.Primitive(tw.EditorWidget()), tw.GetFocus())

		tw.HandleEvent(key(tcell.KeyCtrlO))
		assert.Equal(t, tview.Primitive(tw.OrganizerWidget()), tw.GetFocus())
	})

	t.Run("other keys pass through", func(t *testing.T) {
		ev := char('x')
		assert.Equal(t, ev, tw.HandleEvent(ev))
	})

	t.Run("copy failure is reported", func(t *testing.T) {
		tw.SetClipboard(func(string) error { return assert.AnError })
		tw.OrganizerWidget().CopySelected()
		assert.True(t, tw.modalOpen())
		tw.closeModal()
	})
}

func TestMainWindowQuitCommitsEdit(t *testing.T) {
	tw := newTestWindow(t, "draft")

	tw.SetFocus(tw.EditorWidget())
	tw.EditorWidget().SetText("final", true)
	assert.Equal(t, []string{"draft"}, tw.saved(t))

	tw.Quit()
	assert.Equal(t, []string{"final"}, tw.saved(t))
}
