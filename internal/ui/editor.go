package ui

import (
	"fmt"
	"templed/internal/data"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

//////// EditorWidget

/*

The editor pane shows the highlighted template and edits it once focused.

Keystrokes only change the text area. The template itself is updated, and the list written
out, when the edit is committed: CTRL-S, or leaving the pane by any route (ESC, TAB, a mouse
click elsewhere, CTRL-Q). tview blurs the focused primitive whenever focus moves, so Blur is
the one place every route passes through.

*/

type EditorWidget struct {
	*tview.TextArea

	window *MainWindow

	id     data.ID // template being shown
	loaded bool    // false when the pane is empty
}

func NewEditorWidget() *EditorWidget {
	e := &EditorWidget{
		TextArea: tview.NewTextArea(),
	}
	e.SetBorder(true)
	e.SetTitle(" template ")
	e.SetPlaceholder("Nothing selected")
	return e
}

func (e *EditorWidget) SetWindow(m *MainWindow) *EditorWidget {
	e.window = m
	return e
}

// SetTemplate shows t in the pane, replacing whatever was there without committing it
func (e *EditorWidget) SetTemplate(t data.Template, position int) {
	e.id = t.ID
	e.loaded = true
	e.SetPosition(position)
	e.SetText(t.Text, true)
}

// SetPosition updates the title after the template moved in the list
func (e *EditorWidget) SetPosition(position int) {
	e.SetTitle(fmt.Sprintf(" template #%d ", position+1))
}

func (e *EditorWidget) Clear() {
	e.loaded = false
	e.SetTitle(" template ")
	e.SetText("", false)
}

// Editing reports whether the pane holds the template with the given ID
func (e *EditorWidget) Editing(id data.ID) bool { return e.loaded && e.id == id }

// Commit writes the pane's text back to its template and saves, if the text changed.
// A template deleted in the meantime is left alone.
func (e *EditorWidget) Commit() {
	if !e.loaded {
		return
	}
	current, ok := e.window.session.Get(e.id)
	if !ok {
		e.Clear()
		return
	}
	text := e.GetText()
	if text == current.Text {
		return
	}
	e.window.session.UpdateText(e.id, text)
	err := e.window.session.Commit()
	e.window.organizerwidget.Refresh()
	e.window.reportSave(err, "Saved template")
}

func (e *EditorWidget) Focus(delegate func(p tview.Primitive)) {
	e.window.SetLastFocused(e)
	e.TextArea.Focus(delegate)
}

func (e *EditorWidget) Blur() {
	e.Commit()
	e.TextArea.Blur()
}

func (e *EditorWidget) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	handler := e.TextArea.InputHandler()
	return func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyCtrlS:
			e.Commit()
			return
		case tcell.KeyESC, tcell.KeyTAB, tcell.KeyBacktab:
			setFocus(e.window.organizerwidget)
			return
		}
		if !e.loaded {
			return
		}
		handler(event, setFocus)
	}
}

// The text area would otherwise hand focus to itself, skipping Focus and Blur above
func (e *EditorWidget) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	handler := e.TextArea.MouseHandler()
	return func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		consumed, capture = handler(action, event, func(p tview.Primitive) {
			if p == e.TextArea {
				p = e
			}
			setFocus(p)
		})
		if capture == e.TextArea {
			capture = e
		}
		return consumed, capture
	}
}
