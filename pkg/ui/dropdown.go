package ui

import (
	"github.com/gdamore/tcell/v2"
)

// maxDropdownRows caps how many items a dropdown shows at once; longer
// lists scroll.
const maxDropdownRows = 10

// Dropdown is a modal overlay list used by the port, line-parameter
// and theme selectors.
type Dropdown struct {
	title    string
	items    []string
	selected int
	top      int
	x, y     int
	width    int
	height   int

	// onHover is invoked as the highlight moves, before a choice is
	// committed. Used by the theme selector for live preview.
	onHover func(string)
}

// NewDropdown creates a dropdown over items with the given title.
// selected preselects the highlighted item when found.
func NewDropdown(title string, items []string, selected string) *Dropdown {
	d := &Dropdown{
		title: title,
		items: items,
	}
	for i, item := range items {
		if item == selected {
			d.selected = i
			break
		}
	}
	d.updateDimensions()
	return d
}

// SetOnHover sets the highlight-preview callback.
func (d *Dropdown) SetOnHover(callback func(string)) {
	d.onHover = callback
}

// HandleKey processes one key event. It returns the committed choice
// when Enter is pressed, and closed=true when the dropdown should be
// dismissed (on both Enter and Escape).
func (d *Dropdown) HandleKey(ev *tcell.EventKey) (choice string, chosen bool, closed bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		return "", false, true
	case tcell.KeyUp:
		d.moveSelection(-1)
		return "", false, false
	case tcell.KeyDown:
		d.moveSelection(1)
		return "", false, false
	case tcell.KeyEnter:
		if len(d.items) == 0 {
			return "", false, true
		}
		return d.items[d.selected], true, true
	}
	return "", false, false
}

// moveSelection moves the highlight, wrapping at both ends.
func (d *Dropdown) moveSelection(direction int) {
	if len(d.items) == 0 {
		return
	}

	d.selected += direction
	if d.selected < 0 {
		d.selected = len(d.items) - 1
	} else if d.selected >= len(d.items) {
		d.selected = 0
	}

	// Keep the highlight inside the visible window.
	rows := d.visibleRows()
	if d.selected < d.top {
		d.top = d.selected
	} else if d.selected >= d.top+rows {
		d.top = d.selected - rows + 1
	}

	if d.onHover != nil {
		d.onHover(d.items[d.selected])
	}
}

// Draw renders the dropdown centered on the screen.
func (d *Dropdown) Draw(screen tcell.Screen, theme Theme) {
	screenWidth, screenHeight := screen.Size()
	d.x = (screenWidth - d.width) / 2
	d.y = (screenHeight - d.height) / 2
	if d.x < 0 {
		d.x = 0
	}
	if d.y < 0 {
		d.y = 0
	}

	style := theme.Base()
	selectedStyle := theme.Focused().Reverse(true)

	d.drawBorder(screen, theme.BorderStyle())

	// Title and separator under it.
	titleX := d.x + (d.width-len(d.title))/2
	drawText(screen, titleX, d.y+1, d.title, style.Bold(true))
	for x := d.x + 1; x < d.x+d.width-1; x++ {
		screen.SetContent(x, d.y+2, '─', nil, theme.BorderStyle())
	}

	rows := d.visibleRows()
	itemY := d.y + 3
	for i := d.top; i < d.top+rows && i < len(d.items); i++ {
		itemStyle := style
		if i == d.selected {
			itemStyle = selectedStyle
		}
		for x := d.x + 1; x < d.x+d.width-1; x++ {
			screen.SetContent(x, itemY, ' ', nil, itemStyle)
		}
		drawText(screen, d.x+2, itemY, d.items[i], itemStyle)
		itemY++
	}

	if len(d.items) == 0 {
		drawText(screen, d.x+2, itemY, "(none found)", style)
	}
}

// visibleRows returns the number of item rows shown.
func (d *Dropdown) visibleRows() int {
	if len(d.items) > maxDropdownRows {
		return maxDropdownRows
	}
	if len(d.items) == 0 {
		return 1
	}
	return len(d.items)
}

// drawBorder draws the frame and fills the background.
func (d *Dropdown) drawBorder(screen tcell.Screen, style tcell.Style) {
	screen.SetContent(d.x, d.y, '┌', nil, style)
	screen.SetContent(d.x+d.width-1, d.y, '┐', nil, style)
	for x := d.x + 1; x < d.x+d.width-1; x++ {
		screen.SetContent(x, d.y, '─', nil, style)
	}

	for y := d.y + 1; y < d.y+d.height-1; y++ {
		screen.SetContent(d.x, y, '│', nil, style)
		screen.SetContent(d.x+d.width-1, y, '│', nil, style)
		for x := d.x + 1; x < d.x+d.width-1; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}

	screen.SetContent(d.x, d.y+d.height-1, '└', nil, style)
	screen.SetContent(d.x+d.width-1, d.y+d.height-1, '┘', nil, style)
	for x := d.x + 1; x < d.x+d.width-1; x++ {
		screen.SetContent(x, d.y+d.height-1, '─', nil, style)
	}
}

// updateDimensions sizes the dropdown to its content.
func (d *Dropdown) updateDimensions() {
	maxWidth := len(d.title) + 4
	for _, item := range d.items {
		if len(item)+6 > maxWidth {
			maxWidth = len(item) + 6
		}
	}
	d.width = maxWidth
	d.height = d.visibleRows() + 5
}

// drawText draws text at the specified position.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}
