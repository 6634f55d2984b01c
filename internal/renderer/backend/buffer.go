package backend

import (
	"github.com/dshills/mathkey/internal/renderer/core"
)

// ScreenBuffer provides double-buffered rendering with change tracking.
// Drawing goes to the back buffer; Flush hands changed cells to the display
// and copies them to the front buffer.
type ScreenBuffer struct {
	width, height int
	front         [][]core.Cell
	back          [][]core.Cell
	dirty         [][]bool
	fullRedraw    bool
}

// NewScreenBuffer creates a screen buffer with the given dimensions.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	sb := &ScreenBuffer{
		width:      max(width, 0),
		height:     max(height, 0),
		fullRedraw: true,
	}
	sb.allocate()
	return sb
}

func (sb *ScreenBuffer) allocate() {
	sb.front = make([][]core.Cell, sb.height)
	sb.back = make([][]core.Cell, sb.height)
	sb.dirty = make([][]bool, sb.height)

	for y := 0; y < sb.height; y++ {
		sb.front[y] = make([]core.Cell, sb.width)
		sb.back[y] = make([]core.Cell, sb.width)
		sb.dirty[y] = make([]bool, sb.width)

		for x := 0; x < sb.width; x++ {
			sb.front[y][x] = core.EmptyCell()
			sb.back[y][x] = core.EmptyCell()
		}
	}
}

// Resize resizes the buffer, preserving content where possible.
func (sb *ScreenBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == sb.width && height == sb.height {
		return
	}

	oldBack := sb.back
	copyHeight := min(sb.height, height)
	copyWidth := min(sb.width, width)

	sb.width = width
	sb.height = height
	sb.allocate()

	for y := 0; y < copyHeight; y++ {
		copy(sb.back[y][:copyWidth], oldBack[y][:copyWidth])
	}
	sb.fullRedraw = true
}

// Size returns the buffer dimensions.
func (sb *ScreenBuffer) Size() (width, height int) {
	return sb.width, sb.height
}

func (sb *ScreenBuffer) inside(x, y int) bool {
	return x >= 0 && x < sb.width && y >= 0 && y < sb.height
}

// SetCell sets a cell in the back buffer. A wide cell also claims the
// cell to its right as a continuation.
func (sb *ScreenBuffer) SetCell(x, y int, cell core.Cell) {
	if !sb.inside(x, y) {
		return
	}
	sb.back[y][x] = cell
	sb.dirty[y][x] = true
	if cell.Width == 2 && x+1 < sb.width {
		sb.back[y][x+1] = core.ContinuationCell(cell.Style)
		sb.dirty[y][x+1] = true
	}
}

// GetCell returns a cell from the back buffer.
func (sb *ScreenBuffer) GetCell(x, y int) core.Cell {
	if !sb.inside(x, y) {
		return core.EmptyCell()
	}
	return sb.back[y][x]
}

// GetFrontCell returns a cell from the front buffer (currently displayed).
func (sb *ScreenBuffer) GetFrontCell(x, y int) core.Cell {
	if !sb.inside(x, y) {
		return core.EmptyCell()
	}
	return sb.front[y][x]
}

// Fill fills a rectangle with the given cell.
func (sb *ScreenBuffer) Fill(rect core.ScreenRect, cell core.Cell) {
	for y := max(rect.Top, 0); y < rect.Bottom && y < sb.height; y++ {
		for x := max(rect.Left, 0); x < rect.Right && x < sb.width; x++ {
			sb.back[y][x] = cell
			sb.dirty[y][x] = true
		}
	}
}

// Clear clears the back buffer with empty cells.
func (sb *ScreenBuffer) Clear() {
	sb.Fill(core.RectFromSize(0, 0, sb.height, sb.width), core.EmptyCell())
}

// Flush passes every changed cell to fn (which may be nil) and makes the
// back buffer current. It returns the number of cells passed.
func (sb *ScreenBuffer) Flush(fn func(x, y int, cell core.Cell)) int {
	n := 0
	for y := 0; y < sb.height; y++ {
		for x := 0; x < sb.width; x++ {
			if !sb.fullRedraw && (!sb.dirty[y][x] || sb.back[y][x].Equals(sb.front[y][x])) {
				sb.dirty[y][x] = false
				continue
			}
			if fn != nil {
				fn(x, y, sb.back[y][x])
			}
			sb.front[y][x] = sb.back[y][x]
			sb.dirty[y][x] = false
			n++
		}
	}
	sb.fullRedraw = false
	return n
}

// MarkFullRedraw forces a complete redraw on next flush.
func (sb *ScreenBuffer) MarkFullRedraw() {
	sb.fullRedraw = true
}

// IsDirty returns true if there are pending changes.
func (sb *ScreenBuffer) IsDirty() bool {
	if sb.fullRedraw {
		return true
	}
	for y := 0; y < sb.height; y++ {
		for x := 0; x < sb.width; x++ {
			if sb.dirty[y][x] {
				return true
			}
		}
	}
	return false
}

// Row returns the text of back buffer row y.
func (sb *ScreenBuffer) Row(y int) string {
	if y < 0 || y >= sb.height {
		return ""
	}
	return core.StringFromCells(sb.back[y])
}

// FrontRow returns the text of front buffer row y.
func (sb *ScreenBuffer) FrontRow(y int) string {
	if y < 0 || y >= sb.height {
		return ""
	}
	return core.StringFromCells(sb.front[y])
}
