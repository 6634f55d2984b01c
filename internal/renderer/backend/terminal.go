package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mathkey/internal/input/key"
	"github.com/dshills/mathkey/internal/renderer/core"
)

// Terminal implements Backend using tcell for terminal output. Cells are
// staged in a ScreenBuffer and only changed cells reach the screen.
type Terminal struct {
	screen tcell.Screen
	buf    *ScreenBuffer
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.buf = NewScreenBuffer(t.screen.Size())
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.buf.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf.SetCell(x, y, cell)
}

func (t *Terminal) GetCell(x, y int) core.Cell {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.buf.GetCell(x, y)
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf.Flush(func(x, y int, cell core.Cell) {
		if cell.IsContinuation() {
			return
		}
		mainc, comb := cell.Runes()
		t.screen.SetContent(x, y, mainc, comb, convertStyle(cell.Style))
	})
	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

// PollEvent blocks until a key, resize or interrupt arrives. Other tcell
// events are skipped.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Type: EventNone}
		}
		if out, ok := t.convertEvent(ev); ok {
			return out
		}
	}
}

// PostEvent posts key and interrupt events to the tcell queue.
func (t *Terminal) PostEvent(event Event) {
	switch event.Type {
	case EventInterrupt:
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(event.Data)) // best-effort; event queue may be full
	case EventKey:
		if event.Key.IsRune() {
			_ = t.screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, event.Key.Rune, convertToTcellMod(event.Key.Modifiers)))
		}
	}
}

func (t *Terminal) convertEvent(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, ok := convertKey(e)
		if !ok {
			return Event{}, false
		}
		return Event{Type: EventKey, Key: k}, true

	case *tcell.EventResize:
		w, h := e.Size()
		t.mu.Lock()
		t.buf.Resize(w, h)
		t.screen.Sync()
		t.mu.Unlock()
		return Event{Type: EventResize, Width: w, Height: h}, true

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Data: e.Data()}, true

	default:
		return Event{}, false
	}
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		style = style.Foreground(tcell.NewRGBColor(int32(s.Foreground.R), int32(s.Foreground.G), int32(s.Foreground.B)))
	}
	if !s.Background.IsDefault() {
		style = style.Background(tcell.NewRGBColor(int32(s.Background.R), int32(s.Background.G), int32(s.Background.B)))
	}

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}
	return style
}

// convertKey converts a tcell key event. Control letters arrive either as
// KeyCtrlA..KeyCtrlZ or as runes with ModCtrl, depending on the terminal.
func convertKey(e *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(e.Modifiers())
	k := e.Key()
	switch k {
	case tcell.KeyRune:
		return key.RuneEvent(e.Rune(), mods), true
	case tcell.KeyEscape:
		return key.SpecialEvent(key.KeyEscape, mods), true
	case tcell.KeyEnter:
		return key.SpecialEvent(key.KeyEnter, mods), true
	case tcell.KeyTab:
		return key.SpecialEvent(key.KeyTab, mods), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.SpecialEvent(key.KeyBackspace, mods&^key.ModCtrl), true
	case tcell.KeyDelete:
		return key.SpecialEvent(key.KeyDelete, mods), true
	case tcell.KeyHome:
		return key.SpecialEvent(key.KeyHome, mods), true
	case tcell.KeyEnd:
		return key.SpecialEvent(key.KeyEnd, mods), true
	case tcell.KeyUp:
		return key.SpecialEvent(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.SpecialEvent(key.KeyDown, mods), true
	case tcell.KeyLeft:
		return key.SpecialEvent(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.SpecialEvent(key.KeyRight, mods), true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.RuneEvent('a'+rune(k-tcell.KeyCtrlA), mods|key.ModCtrl), true
	}
	return key.Event{}, false
}

// convertMod converts tcell modifier mask to our Modifier.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}

// convertToTcellMod converts our Modifier to tcell.ModMask.
func convertToTcellMod(m key.Modifier) tcell.ModMask {
	var result tcell.ModMask
	if m.Has(key.ModShift) {
		result |= tcell.ModShift
	}
	if m.Has(key.ModCtrl) {
		result |= tcell.ModCtrl
	}
	if m.Has(key.ModAlt) {
		result |= tcell.ModAlt
	}
	if m.Has(key.ModMeta) {
		result |= tcell.ModMeta
	}
	return result
}
