package ui

import (
	"errors"
	"fmt"
	"templed/internal/data"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Override the global Styles fields for the colors we want
func setStyles(theme string) {
	if theme == data.ThemeLight {
		tview.Styles.PrimitiveBackgroundColor = tcell.ColorWhite
		tview.Styles.ContrastBackgroundColor = tcell.ColorLightSkyBlue
		tview.Styles.MoreContrastBackgroundColor = tcell.ColorLightGoldenrodYellow
		tview.Styles.BorderColor = tcell.ColorBlack
		tview.Styles.TitleColor = tcell.ColorNavy
		tview.Styles.GraphicsColor = tcell.ColorBlack
		tview.Styles.PrimaryTextColor = tcell.ColorBlack
		tview.Styles.SecondaryTextColor = tcell.ColorDarkGreen
		tview.Styles.TertiaryTextColor = tcell.ColorMaroon
		tview.Styles.InverseTextColor = tcell.ColorWhite
		tview.Styles.ContrastSecondaryTextColor = tcell.ColorNavy
		return
	}

	tview.Styles.PrimitiveBackgroundColor = tcell.ColorBlack
	tview.Styles.ContrastBackgroundColor = tcell.ColorTeal
	tview.Styles.MoreContrastBackgroundColor = tcell.ColorYellow
	tview.Styles.BorderColor = tcell.ColorWhite
	tview.Styles.TitleColor = tcell.ColorYellow
	tview.Styles.GraphicsColor = tcell.ColorWhite
	tview.Styles.PrimaryTextColor = tcell.ColorWhite
	tview.Styles.SecondaryTextColor = tcell.ColorGreen
	tview.Styles.TertiaryTextColor = tcell.ColorYellow
	tview.Styles.InverseTextColor = tcell.ColorBlue
	tview.Styles.ContrastSecondaryTextColor = tcell.ColorNavy
}

type MainWindow struct {
	*tview.Application
	mainView        *tview.Flex
	last_focused    tview.Primitive
	pages           *tview.Pages
	header          *tview.TextView
	status          *tview.TextView
	editorwidget    *EditorWidget
	organizerwidget *OrganizerWidget
	inputField      *tview.InputField
	modals          map[string]*tview.Modal
	onConfirm       func()
	session         *data.Session
	copyText        func(string) error
}

func (m *MainWindow) createModals() {

	m.modals["errormodal"] = tview.NewModal().
		SetText("Error!").
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			m.closeModal()
		})

	m.modals["confirmmodal"] = tview.NewModal().
		AddButtons([]string{"Delete", "Cancel"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			m.answerConfirm(buttonIndex)
		})
}

func NewMainWindow(s *data.Session, theme string) *MainWindow {

	setStyles(theme)

	m := &MainWindow{
		Application:     tview.NewApplication(),
		pages:           tview.NewPages(),
		header:          tview.NewTextView().SetDynamicColors(false),
		status:          tview.NewTextView().SetDynamicColors(true),
		editorwidget:    NewEditorWidget(),
		organizerwidget: NewOrganizerWidget(s),
		inputField:      tview.NewInputField(),
		session:         s,
		copyText:        clipboard.WriteAll,
	}

	m.modals = make(map[string]*tview.Modal)
	m.createModals()

	m.organizerwidget.SetWindow(m)
	m.organizerwidget.SetTitleAlign(tview.AlignLeft)

	m.editorwidget.SetWindow(m)
	m.editorwidget.SetTitleAlign(tview.AlignLeft)

	m.inputField.SetLabel("New template: ").
		SetFieldBackgroundColor(tview.Styles.ContrastBackgroundColor).
		SetDoneFunc(m.newTemplateDone)

	m.header.SetText(m.locationText())

	body := tview.NewFlex().
		AddItem(m.organizerwidget, 0, 1, true).
		AddItem(m.editorwidget, 0, 2, false)

	m.mainView = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(m.header, 1, 0, false).
		AddItem(m.inputField, 1, 0, false).
		AddItem(body, 0, 1, true).
		AddItem(m.status, 1, 0, false)

	m.pages.AddPage("mainview", m.mainView, true, true)

	m.SetInputCapture(m.HandleEvent)

	m.SetRoot(m.pages, true).EnableMouse(true).EnablePaste(true).SetFocus(m.organizerwidget)

	return m
}

func (m *MainWindow) Init() *MainWindow {
	m.organizerwidget.Refresh()
	m.showSelected()
	if m.session.Location() == "" {
		m.Info("Templates will not be saved")
	} else if m.organizerwidget.TemplateCount() == 0 {
		m.Info("Type a template above and press Enter to add it (CTRL-N)")
	}
	return m
}

// SetClipboard replaces the function used to put text on the system clipboard
func (m *MainWindow) SetClipboard(fn func(string) error) { m.copyText = fn }

func (m *MainWindow) locationText() string {
	if dir := m.session.Location(); dir != "" {
		return fmt.Sprintf("The data is saved here: %s  (CTRL-Y to copy)", dir)
	}
	return "Unable to locate a place to save data to"
}

func (m *MainWindow) HandleEvent(event *tcell.EventKey) *tcell.EventKey {
	if m.modalOpen() {
		// Pass along if a modal is open (it should close the modal)
		return event
	}
	switch event.Key() {
	case tcell.KeyCtrlC: // override default tview where CTRL-C quits app
		if m.GetFocus() == m.organizerwidget {
			m.organizerwidget.CopySelected()
		}
		return nil
	case tcell.KeyCtrlQ:
		m.Quit()
		return nil
	case tcell.KeyCtrlN:
		m.SetFocus(m.inputField)
		return nil
	case tcell.KeyCtrlO:
		m.SetFocus(m.organizerwidget)
		return nil
	case tcell.KeyCtrlE:
		m.EditSelected()
		return nil
	case tcell.KeyCtrlY:
		if dir := m.session.Location(); dir != "" {
			m.Copy(dir, "data directory")
		}
		return nil
	}
	return event
}

// Quit commits any pending edit and stops the application
func (m *MainWindow) Quit() {
	m.editorwidget.Commit()
	m.Stop()
}

func (m *MainWindow) newTemplateDone(key tcell.Key) {
	switch key {
	case tcell.KeyESC, tcell.KeyTAB, tcell.KeyBacktab:
		m.SetFocus(m.organizerwidget)
	case tcell.KeyEnter:
		t, err := m.session.Append(m.inputField.GetText())
		m.inputField.SetText("")
		m.organizerwidget.Refresh()
		m.organizerwidget.Select(t.ID)
		m.showSelected()
		m.reportSave(err, "Added template")
	}
}

// EditSelected moves focus into the editor for the highlighted template
func (m *MainWindow) EditSelected() {
	if _, ok := m.organizerwidget.CurrentTemplate(); !ok {
		m.Info("Nothing to edit yet (CTRL-N adds a template)")
		return
	}
	m.SetFocus(m.editorwidget)
}

// showSelected loads the highlighted template into the editor pane
func (m *MainWindow) showSelected() {
	m.showTemplate(m.organizerwidget.CurrentTemplate())
}

func (m *MainWindow) showTemplate(t data.Template, ok bool) {
	if !ok {
		m.editorwidget.Clear()
		return
	}
	if m.editorwidget.Editing(t.ID) {
		m.editorwidget.SetPosition(m.organizerwidget.PositionOf(t.ID))
		return
	}
	m.editorwidget.SetTemplate(t, m.organizerwidget.PositionOf(t.ID))
}

// Copy puts text on the clipboard and says so on the status line
func (m *MainWindow) Copy(text string, what string) {
	if err := m.copyText(text); err != nil {
		m.Error("Failed to copy to clipboard: " + err.Error())
		return
	}
	m.Info("Copied " + what + " to clipboard")
}

// reportSave shows the outcome of a write on the status line. Failed saves are not
// modal: the change is still in memory and the next successful save will include it.
func (m *MainWindow) reportSave(err error, done string) {
	switch {
	case err == nil:
		m.Info(done)
	case errors.Is(err, data.ErrUnavailable):
		m.Info(done + " (in memory only)")
	default:
		m.status.SetText("[red]Not saved:[-] " + tview.Escape(err.Error()))
	}
}

func (m *MainWindow) Info(text string) { m.status.SetText(tview.Escape(text)) }

func (m *MainWindow) Error(text string) { m.ShowModal("errormodal", text) }

// Confirm asks a yes/no question and runs onYes if the user agrees
func (m *MainWindow) Confirm(text string, onYes func()) {
	m.onConfirm = onYes
	m.ShowModal("confirmmodal", text)
}

func (m *MainWindow) answerConfirm(buttonIndex int) {
	action := m.onConfirm
	m.onConfirm = nil
	m.closeModal()
	if buttonIndex == 0 && action != nil {
		action()
	}
}

func (m *MainWindow) EditorWidget() *EditorWidget       { return m.editorwidget }
func (m *MainWindow) OrganizerWidget() *OrganizerWidget { return m.organizerwidget }
func (m *MainWindow) Status() string                    { return m.status.GetText(true) }

func (m *MainWindow) ShowModal(name string, text string) {
	modal := m.modals[name]
	if modal != nil {
		if text != "" {
			modal.SetText(text)
		}
		m.pages.AddPage("modal", modal, false, true)
		m.pages.ShowPage("modal")
		m.EnableMouse(false)
	}
}

func (m *MainWindow) SetLastFocused(p tview.Primitive) { m.last_focused = p }
func (m *MainWindow) GetLastFocused() tview.Primitive  { return m.last_focused }

func (m *MainWindow) modalOpen() bool {
	name, _ := m.pages.GetFrontPage()
	return name == "modal"
}

func (m *MainWindow) closeModal() {
	m.pages.RemovePage("modal")
	m.EnableMouse(true)
	m.SetFocus(m.last_focused)
}
