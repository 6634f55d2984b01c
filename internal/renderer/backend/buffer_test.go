package backend

import (
	"strings"
	"testing"

	"github.com/dshills/mathkey/internal/renderer/core"
)

func TestNewScreenBuffer(t *testing.T) {
	sb := NewScreenBuffer(80, 24)

	w, h := sb.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
	if !sb.IsDirty() {
		t.Error("new buffer should need a full redraw")
	}
}

func TestScreenBufferSetGetCell(t *testing.T) {
	sb := NewScreenBuffer(10, 3)

	cell := core.NewCell("A", core.DefaultStyle().WithForeground(core.ColorWhite))
	sb.SetCell(4, 1, cell)
	if got := sb.GetCell(4, 1); !got.Equals(cell) {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds
	sb.SetCell(-1, 0, cell)
	sb.SetCell(100, 0, cell)
	if !sb.GetCell(-1, 0).Equals(core.EmptyCell()) {
		t.Error("out of bounds should return empty cell")
	}
}

func TestScreenBufferWideCell(t *testing.T) {
	sb := NewScreenBuffer(4, 1)
	sb.SetCell(1, 0, core.NewCell("漢", core.DefaultStyle()))

	if !sb.GetCell(2, 0).IsContinuation() {
		t.Error("cell after a wide grapheme should be a continuation")
	}
	if got := strings.TrimRight(sb.Row(0), " "); got != " 漢" {
		t.Errorf("Row(0) = %q", got)
	}

	// A wide cell at the right edge has no room for its continuation.
	sb.SetCell(3, 0, core.NewCell("字", core.DefaultStyle()))
	if got := sb.GetCell(3, 0).Text; got != "字" {
		t.Errorf("edge cell = %q", got)
	}
}

func TestScreenBufferFillClear(t *testing.T) {
	sb := NewScreenBuffer(8, 4)
	sb.Fill(core.RectFromSize(1, 2, 2, 3), core.NewCell("#", core.DefaultStyle()))

	if sb.GetCell(3, 2).Text != "#" {
		t.Error("cell inside rect should be filled")
	}
	if sb.GetCell(0, 0).Text == "#" {
		t.Error("cell outside rect should not be filled")
	}

	sb.Clear()
	if !sb.GetCell(3, 2).IsEmpty() {
		t.Error("clear should reset all cells")
	}
}

func TestScreenBufferFlush(t *testing.T) {
	sb := NewScreenBuffer(3, 2)

	if n := sb.Flush(nil); n != 6 {
		t.Errorf("first flush should redraw every cell, got %d", n)
	}
	if sb.IsDirty() {
		t.Error("buffer should be clean after flush")
	}

	x := core.NewCell("x", core.DefaultStyle())
	sb.SetCell(1, 1, x)
	sb.SetCell(0, 0, core.EmptyCell()) // unchanged

	var got []string
	n := sb.Flush(func(cx, cy int, c core.Cell) {
		got = append(got, c.Text)
		if cx != 1 || cy != 1 {
			t.Errorf("flushed (%d,%d), want (1,1)", cx, cy)
		}
	})
	if n != 1 || len(got) != 1 || got[0] != "x" {
		t.Errorf("Flush = %d %v", n, got)
	}
	if !sb.GetFrontCell(1, 1).Equals(x) {
		t.Error("front buffer should hold the flushed cell")
	}
	if sb.FrontRow(1) != " x " {
		t.Errorf("FrontRow(1) = %q", sb.FrontRow(1))
	}
}

func TestScreenBufferResize(t *testing.T) {
	sb := NewScreenBuffer(4, 4)
	sb.SetCell(1, 1, core.NewCell("k", core.DefaultStyle()))
	sb.SetCell(3, 3, core.NewCell("z", core.DefaultStyle()))
	sb.Flush(nil)

	sb.Resize(2, 2)
	if w, h := sb.Size(); w != 2 || h != 2 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if sb.GetCell(1, 1).Text != "k" {
		t.Error("resize should preserve content inside the new bounds")
	}
	if !sb.IsDirty() {
		t.Error("resize should force a redraw")
	}

	sb.Resize(-1, 3)
	if w, h := sb.Size(); w != 0 || h != 3 {
		t.Errorf("negative width should clamp, got %dx%d", w, h)
	}
	if sb.Row(5) != "" {
		t.Error("row out of range should be empty")
	}
}
