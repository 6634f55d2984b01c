// Package backend provides terminal backend abstraction for the renderer.
package backend

import (
	"github.com/dshills/mathkey/internal/input/key"
	"github.com/dshills/mathkey/internal/renderer/core"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int

	// Data carries the payload of an EventInterrupt.
	Data any
}

// Backend defines the interface for terminal/display backends.
// Implementations handle actual drawing to the terminal or other display surfaces.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// GetCell returns the cell at the given position.
	// Returns an empty cell for positions outside the terminal.
	GetCell(x, y int) core.Cell

	// Clear clears the entire screen with the default style.
	Clear()

	// Show synchronizes the internal buffer with the actual display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next terminal event.
	// This is a blocking call.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)
}

// Null is an in-memory backend for tests and headless runs.
type Null struct {
	buf           *ScreenBuffer
	cursorX       int
	cursorY       int
	cursorVisible bool
	shows         int
	events        chan Event
}

// NewNull creates a null backend with the given dimensions.
func NewNull(width, height int) *Null {
	return &Null{
		buf:    NewScreenBuffer(width, height),
		events: make(chan Event, 100),
	}
}

func (b *Null) Init() error { return nil }

func (b *Null) Shutdown() {}

func (b *Null) Size() (int, int) {
	return b.buf.Size()
}

func (b *Null) SetCell(x, y int, cell core.Cell) {
	b.buf.SetCell(x, y, cell)
}

func (b *Null) GetCell(x, y int) core.Cell {
	return b.buf.GetFrontCell(x, y)
}

func (b *Null) Clear() {
	b.buf.Clear()
}

func (b *Null) Show() {
	b.buf.Flush(nil)
	b.shows++
}

func (b *Null) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *Null) HideCursor() {
	b.cursorVisible = false
}

func (b *Null) PollEvent() Event {
	return <-b.events
}

func (b *Null) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// CursorPosition returns the current cursor position for testing.
func (b *Null) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

// Shows returns the number of frames flushed.
func (b *Null) Shows() int { return b.shows }

// Row returns the displayed text of row y.
func (b *Null) Row(y int) string {
	return b.buf.FrontRow(y)
}

// Resize simulates a terminal resize and queues the resize event.
func (b *Null) Resize(width, height int) {
	b.buf.Resize(width, height)
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
