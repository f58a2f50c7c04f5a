// Package ui provides the tcell presentation surface: the control row
// widgets, the bottom-anchored log view and the theme catalogue. The
// surface translates key events into session events; it never mutates
// controller state directly.
package ui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"serial-monitor/pkg/serial"
	"serial-monitor/pkg/session"
)

// control identifies a focusable widget, in Tab order.
type control int

const (
	ctrlPort control = iota
	ctrlOpenToggle
	ctrlListener
	ctrlBaud
	ctrlDataBits
	ctrlParity
	ctrlStopBits
	ctrlRxHex
	ctrlRxBin
	ctrlRxUTF8
	ctrlTxFormat
	ctrlCommand
	ctrlSend
	ctrlTheme
	controlCount
)

// Action is a surface-level request that is not a session event.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionSaveTranscript
)

// View renders the monitor surface and translates key events. It keeps
// only presentation state: focus, dropdown overlay and log scroll.
type View struct {
	screen tcell.Screen
	ports  []string

	focus       control
	dropdown    *Dropdown
	dropdownFor control
	scroll      int

	pending []session.Event
}

// NewView creates a view over the given screen with the enumerated
// port names.
func NewView(screen tcell.Screen, ports []string) *View {
	return &View{
		screen: screen,
		ports:  ports,
		focus:  ctrlPort,
	}
}

// HandleKey translates one key event into zero or more session events
// and an optional surface action.
func (v *View) HandleKey(ev *tcell.EventKey, ctrl *session.Controller) ([]session.Event, Action) {
	v.pending = nil

	if v.dropdown != nil {
		return v.handleDropdownKey(ev)
	}

	// Global shortcuts work regardless of focus.
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return nil, ActionQuit
	case tcell.KeyCtrlS:
		return nil, ActionSaveTranscript
	case tcell.KeyTab:
		v.focus = (v.focus + 1) % controlCount
		return nil, ActionNone
	case tcell.KeyBacktab:
		v.focus = (v.focus + controlCount - 1) % controlCount
		return nil, ActionNone
	case tcell.KeyPgUp:
		v.scroll += 10
		return nil, ActionNone
	case tcell.KeyPgDn:
		v.scroll -= 10
		if v.scroll < 0 {
			v.scroll = 0
		}
		return nil, ActionNone
	}

	return v.handleFocusedKey(ev, ctrl)
}

// handleDropdownKey routes keys to the open dropdown overlay.
func (v *View) handleDropdownKey(ev *tcell.EventKey) ([]session.Event, Action) {
	choice, chosen, closed := v.dropdown.HandleKey(ev)
	events := v.pending
	if chosen {
		if sev := v.selectionEvent(v.dropdownFor, choice); sev != nil {
			events = append(events, sev)
		}
	}
	if closed {
		v.dropdown = nil
	}
	return events, ActionNone
}

// selectionEvent maps a committed dropdown choice to a session event.
func (v *View) selectionEvent(target control, choice string) session.Event {
	switch target {
	case ctrlPort:
		return session.SelectPort{Name: choice}
	case ctrlBaud:
		rate, err := strconv.Atoi(choice)
		if err != nil {
			return nil
		}
		return session.SelectBaud{Rate: rate}
	case ctrlDataBits:
		bits, err := strconv.Atoi(choice)
		if err != nil {
			return nil
		}
		return session.SelectDataBits{Bits: bits}
	case ctrlParity:
		return session.SelectParity{Parity: choice}
	case ctrlStopBits:
		bits, err := strconv.Atoi(choice)
		if err != nil {
			return nil
		}
		return session.SelectStopBits{Bits: bits}
	case ctrlTheme:
		return session.SelectTheme{Name: choice}
	}
	return nil
}

// handleFocusedKey handles a key for the focused control.
func (v *View) handleFocusedKey(ev *tcell.EventKey, ctrl *session.Controller) ([]session.Event, Action) {
	cfg := ctrl.Config()

	switch v.focus {
	case ctrlPort:
		if isActivate(ev) {
			v.openDropdown(ctrlPort, "Select port", v.ports, cfg.Device)
		}

	case ctrlOpenToggle:
		if isActivate(ev) {
			if ctrl.PortOpen() {
				return []session.Event{session.ClosePort{}}, ActionNone
			}
			return []session.Event{session.OpenPort{}}, ActionNone
		}

	case ctrlListener:
		if isActivate(ev) {
			return []session.Event{session.ToggleListener{}}, ActionNone
		}

	case ctrlBaud:
		if sev := v.selectorKey(ev, ctrlBaud, "Baud rate", intItems(serial.BaudRates), strconv.Itoa(cfg.BaudRate)); sev != nil {
			return []session.Event{sev}, ActionNone
		}

	case ctrlDataBits:
		if sev := v.selectorKey(ev, ctrlDataBits, "Data bits", intItems(serial.DataBitOptions), strconv.Itoa(cfg.DataBits)); sev != nil {
			return []session.Event{sev}, ActionNone
		}

	case ctrlParity:
		if sev := v.selectorKey(ev, ctrlParity, "Parity", serial.ParityOptions, cfg.Parity); sev != nil {
			return []session.Event{sev}, ActionNone
		}

	case ctrlStopBits:
		if sev := v.selectorKey(ev, ctrlStopBits, "Stop bits", intItems(serial.StopBitOptions), strconv.Itoa(cfg.StopBits)); sev != nil {
			return []session.Event{sev}, ActionNone
		}

	case ctrlRxHex:
		if isActivate(ev) {
			return []session.Event{session.ToggleRxHex{On: !ctrl.RxFormats().Hex}}, ActionNone
		}

	case ctrlRxBin:
		if isActivate(ev) {
			return []session.Event{session.ToggleRxBinary{On: !ctrl.RxFormats().Binary}}, ActionNone
		}

	case ctrlRxUTF8:
		if isActivate(ev) {
			return []session.Event{session.ToggleRxUTF8{On: !ctrl.RxFormats().UTF8}}, ActionNone
		}

	case ctrlTxFormat:
		if isActivate(ev) || ev.Key() == tcell.KeyLeft || ev.Key() == tcell.KeyRight {
			next := session.TxUTF8
			if ctrl.TxFormat() == session.TxUTF8 {
				next = session.TxHex
			}
			return []session.Event{session.SelectTxFormat{Format: next}}, ActionNone
		}

	case ctrlCommand:
		return v.commandKey(ev, ctrl)

	case ctrlSend:
		if isActivate(ev) {
			return []session.Event{session.Send{}}, ActionNone
		}

	case ctrlTheme:
		if isActivate(ev) {
			v.openDropdown(ctrlTheme, "Change theme", ThemeNames(), ctrl.Theme())
			v.dropdown.SetOnHover(func(name string) {
				v.pending = append(v.pending, session.HoverTheme{Name: name})
			})
		}
	}

	return nil, ActionNone
}

// selectorKey implements the shared behavior of the line-parameter
// selectors: Enter opens a dropdown, left/right cycle in place.
func (v *View) selectorKey(ev *tcell.EventKey, target control, title string, items []string, current string) session.Event {
	switch {
	case isActivate(ev):
		v.openDropdown(target, title, items, current)
		return nil
	case ev.Key() == tcell.KeyLeft:
		return v.selectionEvent(target, cycle(items, current, -1))
	case ev.Key() == tcell.KeyRight:
		return v.selectionEvent(target, cycle(items, current, 1))
	}
	return nil
}

// commandKey edits the composed command. Every change goes through the
// router as a ChangeCommand event; Enter submits.
func (v *View) commandKey(ev *tcell.EventKey, ctrl *session.Controller) ([]session.Event, Action) {
	cmd := ctrl.Command()

	switch ev.Key() {
	case tcell.KeyEnter:
		return []session.Event{session.Send{}}, ActionNone
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(cmd) == 0 {
			return nil, ActionNone
		}
		runes := []rune(cmd)
		return []session.Event{session.ChangeCommand{Text: string(runes[:len(runes)-1])}}, ActionNone
	case tcell.KeyRune:
		return []session.Event{session.ChangeCommand{Text: cmd + string(ev.Rune())}}, ActionNone
	}

	return nil, ActionNone
}

// openDropdown opens the overlay for the given control.
func (v *View) openDropdown(target control, title string, items []string, current string) {
	v.dropdown = NewDropdown(title, items, current)
	v.dropdownFor = target
}

// isActivate reports whether the key activates a button or checkbox.
func isActivate(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEnter {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == ' '
}

// cycle returns the item adjacent to current, wrapping.
func cycle(items []string, current string, direction int) string {
	if len(items) == 0 {
		return current
	}
	idx := 0
	for i, item := range items {
		if item == current {
			idx = i
			break
		}
	}
	idx = (idx + direction + len(items)) % len(items)
	return items[idx]
}

// intItems renders an int option list as dropdown items.
func intItems(options []int) []string {
	items := make([]string, len(options))
	for i, o := range options {
		items[i] = strconv.Itoa(o)
	}
	return items
}

// Draw renders the whole surface from controller state.
func (v *View) Draw(ctrl *session.Controller) {
	theme := LookupTheme(ctrl.Theme())
	base := theme.Base()
	width, height := v.screen.Size()

	// Background fill.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v.screen.SetContent(x, y, ' ', nil, base)
		}
	}

	v.drawHeader(ctrl, theme, width)
	v.drawPortRow(ctrl, theme)
	v.drawLineRow(ctrl, theme)
	v.drawRxRow(ctrl, theme)
	v.drawLog(ctrl, theme, width, height)
	v.drawTxRow(ctrl, theme, height)
	v.drawCommandRow(ctrl, theme, width, height)
	v.drawFooter(ctrl, theme, width, height)

	if v.dropdown != nil {
		v.dropdown.Draw(v.screen, theme)
	}

	v.screen.Show()
}

// drawHeader renders the title row with the port status indicator.
func (v *View) drawHeader(ctrl *session.Controller, theme Theme, width int) {
	drawText(v.screen, 1, 0, "Serial Monitor", theme.Base().Bold(true))

	status := "disconnected"
	if ctrl.PortOpen() {
		status = ctrl.Config().Device
		if ctrl.Listener() == session.Listening {
			status += " [listening]"
		}
	}
	drawText(v.screen, width-len(status)-1, 0, status, theme.BorderStyle())
}

// drawPortRow renders the port selector and the two toggle buttons.
func (v *View) drawPortRow(ctrl *session.Controller, theme Theme) {
	device := ctrl.Config().Device
	if device == "" {
		device = "select a port..."
	}
	x := v.drawControl(1, 2, ctrlPort, fmt.Sprintf("Port: %s ▾", device), theme)

	openLabel := "[ Open Port ]"
	if ctrl.PortOpen() {
		openLabel = "[ Close Port ]"
	}
	x = v.drawControl(x+2, 2, ctrlOpenToggle, openLabel, theme)

	listenLabel := "[ Start Listener ]"
	if ctrl.Listener() == session.Listening {
		listenLabel = "[ Stop Listener ]"
	}
	v.drawControl(x+2, 2, ctrlListener, listenLabel, theme)
}

// drawLineRow renders the line-parameter selectors.
func (v *View) drawLineRow(ctrl *session.Controller, theme Theme) {
	cfg := ctrl.Config()
	x := v.drawControl(1, 4, ctrlBaud, fmt.Sprintf("Baud: %d ▾", cfg.BaudRate), theme)
	x = v.drawControl(x+2, 4, ctrlDataBits, fmt.Sprintf("Data: %d ▾", cfg.DataBits), theme)
	x = v.drawControl(x+2, 4, ctrlParity, fmt.Sprintf("Parity: %s ▾", cfg.Parity), theme)
	v.drawControl(x+2, 4, ctrlStopBits, fmt.Sprintf("Stop: %d ▾", cfg.StopBits), theme)
}

// drawRxRow renders the receive-format checkboxes.
func (v *View) drawRxRow(ctrl *session.Controller, theme Theme) {
	formats := ctrl.RxFormats()
	drawText(v.screen, 1, 6, "Receive as:", theme.Base())
	x := v.drawControl(13, 6, ctrlRxHex, checkboxLabel("HEX", formats.Hex), theme)
	x = v.drawControl(x+2, 6, ctrlRxBin, checkboxLabel("BIN", formats.Binary), theme)
	v.drawControl(x+2, 6, ctrlRxUTF8, checkboxLabel("UTF-8", formats.UTF8), theme)
}

// drawLog renders the bordered, bottom-anchored transcript view.
func (v *View) drawLog(ctrl *session.Controller, theme Theme, width, height int) {
	top, bottom := 7, height-6
	if bottom <= top+1 {
		return
	}

	border := theme.BorderStyle()
	v.screen.SetContent(0, top, '┌', nil, border)
	v.screen.SetContent(width-1, top, '┐', nil, border)
	v.screen.SetContent(0, bottom, '└', nil, border)
	v.screen.SetContent(width-1, bottom, '┘', nil, border)
	for x := 1; x < width-1; x++ {
		v.screen.SetContent(x, top, '─', nil, border)
		v.screen.SetContent(x, bottom, '─', nil, border)
	}
	for y := top + 1; y < bottom; y++ {
		v.screen.SetContent(0, y, '│', nil, border)
		v.screen.SetContent(width-1, y, '│', nil, border)
	}

	entries := ctrl.Log().Entries()
	visible := bottom - top - 1

	maxScroll := len(entries) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if v.scroll > maxScroll {
		v.scroll = maxScroll
	}

	start := len(entries) - visible - v.scroll
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(entries) {
		end = len(entries)
	}

	y := top + 1
	for _, e := range entries[start:end] {
		text := e.Text
		if len(text) > width-4 {
			text = text[:width-4]
		}
		drawText(v.screen, 2, y, text, theme.ForKind(e.Kind))
		y++
	}
}

// drawTxRow renders the transmit-format radio.
func (v *View) drawTxRow(ctrl *session.Controller, theme Theme, height int) {
	y := height - 5
	drawText(v.screen, 1, y, "Command type:", theme.Base())
	label := fmt.Sprintf("%s UTF-8  %s HEX",
		radioMark(ctrl.TxFormat() == session.TxUTF8),
		radioMark(ctrl.TxFormat() == session.TxHex))
	v.drawControl(15, y, ctrlTxFormat, label, theme)
}

// drawCommandRow renders the command input and the send button.
func (v *View) drawCommandRow(ctrl *session.Controller, theme Theme, width, height int) {
	y := height - 3
	sendLabel := "[ Send ]"
	fieldWidth := width - len(sendLabel) - 5
	if fieldWidth < 8 {
		fieldWidth = 8
	}

	cmd := ctrl.Command()
	shown := cmd
	if shown == "" && v.focus != ctrlCommand {
		shown = "Enter command..."
	}
	// Show the tail when the command overflows the field.
	if len(shown) > fieldWidth {
		shown = shown[len(shown)-fieldWidth:]
	}

	fieldStyle := theme.Base().Underline(true)
	if v.focus == ctrlCommand {
		fieldStyle = theme.Focused().Underline(true)
	}
	for x := 1; x <= fieldWidth; x++ {
		v.screen.SetContent(x, y, ' ', nil, fieldStyle)
	}
	drawText(v.screen, 1, y, shown, fieldStyle)

	if v.focus == ctrlCommand {
		cursor := 1 + len(shown)
		if cmd == "" {
			cursor = 1
		}
		v.screen.ShowCursor(cursor, y)
	} else {
		v.screen.HideCursor()
	}

	v.drawControl(fieldWidth+3, y, ctrlSend, sendLabel, theme)
}

// drawFooter renders the theme selector and the key help line.
func (v *View) drawFooter(ctrl *session.Controller, theme Theme, width, height int) {
	y := height - 1
	themeName := ctrl.Theme()
	if themeName == "" {
		themeName = DefaultTheme
	}
	v.drawControl(1, y, ctrlTheme, fmt.Sprintf("Theme: %s ▾", themeName), theme)

	help := "Tab:focus  Enter:select  Ctrl+S:save log  Ctrl+Q:quit"
	if width > len(help)+24 {
		drawText(v.screen, width-len(help)-1, y, help, theme.Base().Dim(true))
	}
}

// drawControl draws a focusable label and returns the x just past it.
func (v *View) drawControl(x, y int, c control, label string, theme Theme) int {
	style := theme.Base()
	if v.focus == c {
		style = theme.Focused()
	}
	drawText(v.screen, x, y, label, style)
	return x + len(label)
}

// checkboxLabel renders a checkbox with its caption.
func checkboxLabel(caption string, on bool) string {
	if on {
		return "[x] " + caption
	}
	return "[ ] " + caption
}

// radioMark renders a radio indicator.
func radioMark(on bool) string {
	if on {
		return "(•)"
	}
	return "( )"
}

