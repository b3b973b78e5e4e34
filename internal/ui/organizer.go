package ui

import (
	"fmt"
	"strings"
	"templed/internal/data"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

//////// Organizer

/*

The Organizer lists templates in their saved order, one row per template (its first line).

ENTER / e         - edit highlighted template
c / CTRL-C        - copy highlighted template to the clipboard
DEL / BACKSPACE   - delete highlighted template (after confirmation)
SHIFT-UP / K      - move highlighted template up
SHIFT-DOWN / J    - move highlighted template down
n                 - focus the new template input

Rows are tied to templates by ID, never by row number. A delete confirmation remembers the
ID it was opened for, so whatever happens to the list while the prompt is up, the template
the user picked is the one that goes.

*/

const previewWidth = 60

type OrganizerWidget struct {
	*tview.Box
	items      *tview.List
	session    *data.Session
	window     *MainWindow
	ids        []data.ID // list row -> template ID
	refreshing bool
}

func NewOrganizerWidget(s *data.Session) *OrganizerWidget {
	o := &OrganizerWidget{
		Box:     tview.NewBox().SetBorder(true).SetTitle(" templates "),
		items:   tview.NewList().ShowSecondaryText(false),
		session: s,
	}

	o.SetDrawFunc(o.organizer_draw)

	o.items.SetSelectedBackgroundColor(tview.Styles.ContrastBackgroundColor)
	o.items.SetWrapAround(false)

	o.items.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		// the list calls this before its current item is updated
		if !o.refreshing && o.window != nil {
			o.window.showTemplate(o.templateAt(index))
		}
	})

	o.items.SetSelectedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		o.window.EditSelected()
	})

	o.Refresh()

	return o
}

// preview is the one-line label for a template
func preview(text string) string {
	line, _, multiline := strings.Cut(text, "\n")
	line = strings.TrimRight(line, "\r")
	if line == "" && !multiline {
		return "(empty)"
	}
	if r := []rune(line); len(r) > previewWidth {
		line = string(r[:previewWidth-1]) + "…"
	} else if multiline {
		line += " …"
	}
	return line
}

// Refresh rebuilds the list from the session, keeping the highlighted template highlighted
func (o *OrganizerWidget) Refresh() {
	current, hadCurrent := o.CurrentTemplate()
	row := o.items.GetCurrentItem()

	o.refreshing = true
	o.items.Clear()
	o.ids = o.ids[:0]
	for _, t := range o.session.Templates() {
		o.items.AddItem(tview.Escape(preview(t.Text)), "", 0, nil)
		o.ids = append(o.ids, t.ID)
	}
	if hadCurrent && o.indexOf(current.ID) >= 0 {
		o.items.SetCurrentItem(o.indexOf(current.ID))
	} else if len(o.ids) > 0 {
		o.items.SetCurrentItem(min(row, len(o.ids)-1))
	}
	o.refreshing = false
}

// Select highlights the template with the given ID
func (o *OrganizerWidget) Select(id data.ID) {
	if i := o.indexOf(id); i >= 0 {
		o.items.SetCurrentItem(i)
	}
}

// Work backwards from o.ids to find the row of the given template
func (o *OrganizerWidget) indexOf(id data.ID) int {
	for i, v := range o.ids {
		if v == id {
			return i
		}
	}
	return -1
}

// PositionOf returns the row of the template with the given ID, or -1
func (o *OrganizerWidget) PositionOf(id data.ID) int { return o.indexOf(id) }

func (o *OrganizerWidget) TemplateCount() int { return len(o.ids) }

// CurrentTemplate returns the highlighted template, if any
func (o *OrganizerWidget) CurrentTemplate() (data.Template, bool) {
	return o.templateAt(o.items.GetCurrentItem())
}

func (o *OrganizerWidget) templateAt(index int) (data.Template, bool) {
	if index < 0 || index >= len(o.ids) {
		return data.Template{}, false
	}
	return o.session.Get(o.ids[index])
}

func (o *OrganizerWidget) SetWindow(m *MainWindow) { o.window = m }

func (o *OrganizerWidget) Focus(delegate func(p tview.Primitive)) {
	o.window.SetLastFocused(o)
	o.Box.Focus(delegate)
}

func (o *OrganizerWidget) Draw(screen tcell.Screen) {
	o.Box.DrawForSubclass(screen, o)
	x, y, width, height := o.GetInnerRect()
	o.items.SetRect(x, y, width, height)
	o.items.Draw(screen)
}

func (o *OrganizerWidget) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return o.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyUp:
			if event.Modifiers()&tcell.ModShift != 0 {
				o.MoveSelected(-1)
				return
			}
		case tcell.KeyDown:
			if event.Modifiers()&tcell.ModShift != 0 {
				o.MoveSelected(1)
				return
			}
		case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
			o.DeleteSelected()
			return
		case tcell.KeyRune:
			switch event.Rune() {
			case 'c':
				o.CopySelected()
				return
			case 'e':
				o.window.EditSelected()
				return
			case 'K':
				o.MoveSelected(-1)
				return
			case 'J':
				o.MoveSelected(1)
				return
			case 'n':
				setFocus(o.window.inputField)
				return
			}
		}
		if handler := o.items.InputHandler(); handler != nil {
			handler(event, setFocus)
		}
	})
}

// The list would otherwise take focus for itself on click
func (o *OrganizerWidget) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return o.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		if !o.InRect(event.Position()) {
			return false, nil
		}
		// take focus first so a pending edit is committed before the selection moves
		if action == tview.MouseLeftDown || action == tview.MouseLeftClick {
			setFocus(o)
			consumed = true
		}
		listConsumed, _ := o.items.MouseHandler()(action, event, func(p tview.Primitive) {})
		return consumed || listConsumed, nil
	})
}

// MoveSelected shifts the highlighted template by delta rows. Each move is one reorder and
// one save.
func (o *OrganizerWidget) MoveSelected(delta int) {
	t, ok := o.CurrentTemplate()
	if !ok {
		return
	}
	to := o.indexOf(t.ID) + delta
	if to < 0 || to >= len(o.ids) {
		return
	}
	err := o.session.Move(t.ID, to)
	o.Refresh()
	o.Select(t.ID)
	o.window.showSelected()
	o.window.reportSave(err, fmt.Sprintf("Moved template to #%d", to+1))
}

// CopySelected puts the highlighted template's text on the clipboard
func (o *OrganizerWidget) CopySelected() {
	t, ok := o.CurrentTemplate()
	if !ok {
		return
	}
	o.window.Copy(t.Text, "template")
}

// DeleteSelected asks for confirmation, then deletes the template that was highlighted when
// the question was asked
func (o *OrganizerWidget) DeleteSelected() {
	t, ok := o.CurrentTemplate()
	if !ok {
		return
	}
	id := t.ID
	o.window.Confirm(fmt.Sprintf("Do you want to delete '%s'?", tview.Escape(preview(t.Text))), func() {
		err := o.session.Remove(id)
		if o.window.editorwidget.Editing(id) {
			o.window.editorwidget.Clear()
		}
		o.Refresh()
		o.window.showSelected()
		o.window.reportSave(err, "Deleted template")
	})
}

// additional draw function for Organizer that further customizes the border
// Adheres to the requirement stated by tview.Box.SetDrawFunc()
func (o *OrganizerWidget) organizer_draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	innerx := x + 1
	innery := y + 1
	innerw := width - 2
	innerh := height - 2
	bottom_border := y + height - 1
	style := tcell.StyleDefault.
		Background(tview.Styles.PrimitiveBackgroundColor).
		Foreground(tview.Styles.PrimaryTextColor)

	// Show position of highlighted template (left-justified)
	if count := o.items.GetItemCount(); count > 0 {
		posMsg := fmt.Sprintf(" #%d ", o.items.GetCurrentItem()+1)
		for i, r := range posMsg {
			screen.SetContent(x+1+i, bottom_border, r, nil, style)
		}
	}

	// Show template count (right-justified)
	tag := "template"
	if o.items.GetItemCount() != 1 {
		tag = "templates"
	}
	msg := fmt.Sprintf(" %d %s ", o.items.GetItemCount(), tag)
	startx := x + width - len(msg) - 1 // align right
	for i, r := range msg {
		screen.SetContent(startx+i, bottom_border, r, nil, style)
	}
	return innerx, innery, innerw, innerh
}
