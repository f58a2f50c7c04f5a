package ui

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"serial-monitor/pkg/serial"
	"serial-monitor/pkg/session"
	"serial-monitor/pkg/transcript"
)

func newTestController() *session.Controller {
	opener := func(serial.PortConfig) (serial.Port, error) {
		return nil, errors.New("no hardware in tests")
	}
	return session.NewController(opener, transcript.NewMemoryLog())
}

func keyEvent(key tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(key, 0, tcell.ModNone)
}

func runeEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestThemeCatalogue(t *testing.T) {
	names := ThemeNames()
	if len(names) == 0 {
		t.Fatal("theme catalogue is empty")
	}

	found := false
	for _, n := range names {
		if n == DefaultTheme {
			found = true
		}
		if LookupTheme(n).Name != n {
			t.Errorf("LookupTheme(%q) returned %q", n, LookupTheme(n).Name)
		}
	}
	if !found {
		t.Errorf("default theme %q missing from catalogue", DefaultTheme)
	}
}

func TestLookupThemeFallback(t *testing.T) {
	tests := []string{"", "No Such Theme"}
	for _, name := range tests {
		if got := LookupTheme(name); got.Name != DefaultTheme {
			t.Errorf("LookupTheme(%q) = %q, want default %q", name, got.Name, DefaultTheme)
		}
	}
}

func TestThemeForKind(t *testing.T) {
	theme := LookupTheme(DefaultTheme)

	if theme.ForKind(transcript.KindInfo) != theme.Base() {
		t.Error("info entries must use the base style")
	}
	if theme.ForKind(transcript.KindError) == theme.Base() {
		t.Error("error entries must be styled distinctly")
	}
}

func TestCycle(t *testing.T) {
	items := []string{"none", "odd", "even"}

	tests := []struct {
		current   string
		direction int
		want      string
	}{
		{"none", 1, "odd"},
		{"odd", 1, "even"},
		{"even", 1, "none"},
		{"none", -1, "even"},
		{"unknown", 1, "odd"},
	}

	for _, tt := range tests {
		if got := cycle(items, tt.current, tt.direction); got != tt.want {
			t.Errorf("cycle(%q, %d) = %q, want %q", tt.current, tt.direction, got, tt.want)
		}
	}

	if got := cycle(nil, "x", 1); got != "x" {
		t.Errorf("cycle on empty list = %q, want current", got)
	}
}

func TestIntItems(t *testing.T) {
	got := intItems([]int{5, 6, 7, 8})
	want := []string{"5", "6", "7", "8"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("intItems[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCheckboxAndRadioLabels(t *testing.T) {
	if got := checkboxLabel("HEX", true); got != "[x] HEX" {
		t.Errorf("checked label = %q", got)
	}
	if got := checkboxLabel("HEX", false); got != "[ ] HEX" {
		t.Errorf("unchecked label = %q", got)
	}
	if radioMark(true) == radioMark(false) {
		t.Error("radio marks must differ")
	}
}

func TestDropdownPreselect(t *testing.T) {
	d := NewDropdown("Baud rate", []string{"9600", "19200", "38400"}, "19200")
	if d.selected != 1 {
		t.Errorf("preselected index = %d, want 1", d.selected)
	}
}

func TestDropdownNavigation(t *testing.T) {
	d := NewDropdown("Parity", []string{"none", "odd", "even"}, "none")

	if _, chosen, closed := d.HandleKey(keyEvent(tcell.KeyDown)); chosen || closed {
		t.Fatal("Down must neither choose nor close")
	}
	choice, chosen, closed := d.HandleKey(keyEvent(tcell.KeyEnter))
	if !chosen || !closed || choice != "odd" {
		t.Errorf("Enter = (%q, %v, %v), want (odd, true, true)", choice, chosen, closed)
	}
}

func TestDropdownWrapsAtEnds(t *testing.T) {
	d := NewDropdown("Stop bits", []string{"1", "2"}, "1")

	d.HandleKey(keyEvent(tcell.KeyUp))
	if d.selected != 1 {
		t.Errorf("Up from first item selected %d, want last", d.selected)
	}
	d.HandleKey(keyEvent(tcell.KeyDown))
	if d.selected != 0 {
		t.Errorf("Down from last item selected %d, want first", d.selected)
	}
}

func TestDropdownEscape(t *testing.T) {
	d := NewDropdown("Select port", []string{"/dev/ttyUSB0"}, "")

	_, chosen, closed := d.HandleKey(keyEvent(tcell.KeyEscape))
	if chosen || !closed {
		t.Errorf("Escape = (chosen=%v, closed=%v), want (false, true)", chosen, closed)
	}
}

func TestDropdownHoverCallback(t *testing.T) {
	d := NewDropdown("Change theme", []string{"A", "B", "C"}, "A")

	var hovered []string
	d.SetOnHover(func(name string) { hovered = append(hovered, name) })

	d.HandleKey(keyEvent(tcell.KeyDown))
	d.HandleKey(keyEvent(tcell.KeyDown))

	if len(hovered) != 2 || hovered[0] != "B" || hovered[1] != "C" {
		t.Errorf("hover sequence = %v, want [B C]", hovered)
	}
}

func TestDropdownEmptyList(t *testing.T) {
	d := NewDropdown("Select port", nil, "")

	_, chosen, closed := d.HandleKey(keyEvent(tcell.KeyEnter))
	if chosen || !closed {
		t.Error("Enter on an empty dropdown must close without choosing")
	}
}

func TestHandleKeyGlobalShortcuts(t *testing.T) {
	v := NewView(nil, nil)
	ctrl := newTestController()

	if _, action := v.HandleKey(keyEvent(tcell.KeyCtrlQ), ctrl); action != ActionQuit {
		t.Errorf("Ctrl+Q action = %v, want ActionQuit", action)
	}
	if _, action := v.HandleKey(keyEvent(tcell.KeyCtrlS), ctrl); action != ActionSaveTranscript {
		t.Errorf("Ctrl+S action = %v, want ActionSaveTranscript", action)
	}
}

func TestHandleKeyTabCyclesFocus(t *testing.T) {
	v := NewView(nil, nil)
	ctrl := newTestController()

	v.HandleKey(keyEvent(tcell.KeyTab), ctrl)
	if v.focus != ctrlOpenToggle {
		t.Errorf("focus after Tab = %v, want open toggle", v.focus)
	}

	v.HandleKey(keyEvent(tcell.KeyBacktab), ctrl)
	v.HandleKey(keyEvent(tcell.KeyBacktab), ctrl)
	if v.focus != ctrlTheme {
		t.Errorf("focus after wrapping Backtab = %v, want theme", v.focus)
	}
}

func TestOpenToggleEmitsOpen(t *testing.T) {
	v := NewView(nil, nil)
	v.focus = ctrlOpenToggle
	ctrl := newTestController()

	events, _ := v.HandleKey(keyEvent(tcell.KeyEnter), ctrl)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if _, ok := events[0].(session.OpenPort); !ok {
		t.Errorf("event = %T, want OpenPort", events[0])
	}
}

func TestListenerButtonEmitsToggle(t *testing.T) {
	v := NewView(nil, nil)
	v.focus = ctrlListener
	ctrl := newTestController()

	events, _ := v.HandleKey(runeEvent(' '), ctrl)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if _, ok := events[0].(session.ToggleListener); !ok {
		t.Errorf("event = %T, want ToggleListener", events[0])
	}
}

func TestSelectorArrowCycles(t *testing.T) {
	v := NewView(nil, nil)
	v.focus = ctrlBaud
	ctrl := newTestController()

	events, _ := v.HandleKey(keyEvent(tcell.KeyRight), ctrl)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	sel, ok := events[0].(session.SelectBaud)
	if !ok || sel.Rate != 19200 {
		t.Errorf("event = %+v, want SelectBaud{19200}", events[0])
	}
}

func TestSelectorEnterOpensDropdown(t *testing.T) {
	v := NewView(nil, nil)
	v.focus = ctrlParity
	ctrl := newTestController()

	v.HandleKey(keyEvent(tcell.KeyEnter), ctrl)
	if v.dropdown == nil {
		t.Fatal("Enter on a selector did not open the dropdown")
	}

	// Commit "odd" through the overlay.
	v.HandleKey(keyEvent(tcell.KeyDown), ctrl)
	events, _ := v.HandleKey(keyEvent(tcell.KeyEnter), ctrl)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	sel, ok := events[0].(session.SelectParity)
	if !ok || sel.Parity != "odd" {
		t.Errorf("event = %+v, want SelectParity{odd}", events[0])
	}
	if v.dropdown != nil {
		t.Error("dropdown survived the commit")
	}
}

func TestRxCheckboxToggles(t *testing.T) {
	v := NewView(nil, nil)
	v.focus = ctrlRxUTF8
	ctrl := newTestController()

	events, _ := v.HandleKey(runeEvent(' '), ctrl)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	toggle, ok := events[0].(session.ToggleRxUTF8)
	if !ok || !toggle.On {
		t.Errorf("event = %+v, want ToggleRxUTF8{On:true}", events[0])
	}
}

func TestTxFormatFlips(t *testing.T) {
	v := NewView(nil, nil)
	v.focus = ctrlTxFormat
	ctrl := newTestController()

	events, _ := v.HandleKey(keyEvent(tcell.KeyRight), ctrl)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	sel, ok := events[0].(session.SelectTxFormat)
	if !ok || sel.Format != session.TxHex {
		t.Errorf("event = %+v, want SelectTxFormat{TxHex}", events[0])
	}
}

func TestCommandEditing(t *testing.T) {
	v := NewView(nil, nil)
	v.focus = ctrlCommand
	ctrl := newTestController()

	events, _ := v.HandleKey(runeEvent('A'), ctrl)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	change, ok := events[0].(session.ChangeCommand)
	if !ok || change.Text != "A" {
		t.Errorf("event = %+v, want ChangeCommand{A}", events[0])
	}
	ctrl.Apply(change)

	events, _ = v.HandleKey(runeEvent('T'), ctrl)
	ctrl.Apply(events[0])
	if ctrl.Command() != "AT" {
		t.Errorf("command = %q, want AT", ctrl.Command())
	}

	events, _ = v.HandleKey(keyEvent(tcell.KeyBackspace2), ctrl)
	change, ok = events[0].(session.ChangeCommand)
	if !ok || change.Text != "A" {
		t.Errorf("backspace event = %+v, want ChangeCommand{A}", events[0])
	}
}

func TestCommandBackspaceOnEmpty(t *testing.T) {
	v := NewView(nil, nil)
	v.focus = ctrlCommand
	ctrl := newTestController()

	events, _ := v.HandleKey(keyEvent(tcell.KeyBackspace2), ctrl)
	if len(events) != 0 {
		t.Errorf("backspace on empty command emitted %v", events)
	}
}

func TestCommandEnterSends(t *testing.T) {
	v := NewView(nil, nil)
	v.focus = ctrlCommand
	ctrl := newTestController()

	events, _ := v.HandleKey(keyEvent(tcell.KeyEnter), ctrl)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if _, ok := events[0].(session.Send); !ok {
		t.Errorf("event = %T, want Send", events[0])
	}
}

func TestThemeDropdownHoverEmitsPreview(t *testing.T) {
	v := NewView(nil, nil)
	v.focus = ctrlTheme
	ctrl := newTestController()

	v.HandleKey(keyEvent(tcell.KeyEnter), ctrl)
	if v.dropdown == nil {
		t.Fatal("theme dropdown did not open")
	}

	events, _ := v.HandleKey(keyEvent(tcell.KeyDown), ctrl)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	hover, ok := events[0].(session.HoverTheme)
	if !ok || hover.Name != ThemeNames()[1] {
		t.Errorf("event = %+v, want HoverTheme{%s}", events[0], ThemeNames()[1])
	}

	events, _ = v.HandleKey(keyEvent(tcell.KeyEnter), ctrl)
	if len(events) != 1 {
		t.Fatalf("commit produced %d events, want 1", len(events))
	}
	sel, ok := events[0].(session.SelectTheme)
	if !ok || sel.Name != ThemeNames()[1] {
		t.Errorf("event = %+v, want SelectTheme{%s}", events[0], ThemeNames()[1])
	}
}

func TestDrawSmoke(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	ctrl := newTestController()
	ctrl.Log().Append(transcript.KindInfo, "Listener started")
	ctrl.Log().Append(transcript.KindRX, "Received 2 bytes: 48 69")

	v := NewView(screen, []string{"/dev/ttyUSB0"})
	v.Draw(ctrl)

	// The title must land in the top-left corner.
	contents, w, _ := screen.GetContents()
	if w < 15 {
		t.Fatalf("unexpected screen width %d", w)
	}
	got := ""
	for i := 1; i <= len("Serial Monitor"); i++ {
		got += string(contents[i].Runes)
	}
	if got != "Serial Monitor" {
		t.Errorf("header = %q, want Serial Monitor", got)
	}
}

func TestDrawWithDropdownSmoke(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	ctrl := newTestController()
	v := NewView(screen, []string{"/dev/ttyUSB0", "/dev/ttyACM0"})
	v.focus = ctrlPort
	v.HandleKey(keyEvent(tcell.KeyEnter), ctrl)
	v.Draw(ctrl)
}
