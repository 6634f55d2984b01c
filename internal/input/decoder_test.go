package input

import (
	"errors"
	"testing"

	"github.com/dshills/mathkey/internal/engine"
	"github.com/dshills/mathkey/internal/engine/formula"
	"github.com/dshills/mathkey/internal/input/key"
	"github.com/dshills/mathkey/internal/input/keymap"
)

func newDecoder(t *testing.T) *Decoder {
	t.Helper()
	d, err := NewDecoder(keymap.Default())
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestDecode(t *testing.T) {
	d := newDecoder(t)
	tests := []struct {
		name  string
		event key.Event
		want  engine.Command
	}{
		{"letter", key.RuneEvent('x', key.ModNone), engine.Command{Op: engine.OpInsertChar, Text: "x"}},
		{"shifted letter", key.RuneEvent('X', key.ModShift), engine.Command{Op: engine.OpInsertChar, Text: "X"}},
		{"digit", key.RuneEvent('3', key.ModNone), engine.Command{Op: engine.OpInsertChar, Text: "3"}},
		{"bracket", key.RuneEvent('(', key.ModShift), engine.Command{Op: engine.OpInsertChar, Text: "("}},
		{"operator", key.RuneEvent('+', key.ModNone), engine.Command{Op: engine.OpInsertChar, Text: "+"}},
		{"fraction", key.RuneEvent('/', key.ModNone), engine.Command{Op: engine.OpGreedyInsert, Kind: formula.KindFraction}},
		{"exponent", key.RuneEvent('^', key.ModShift), engine.Command{Op: engine.OpGreedyInsert, Kind: formula.KindExponent}},
		{"radical", key.RuneEvent('r', key.ModCtrl), engine.Command{Op: engine.OpInsertRadical}},
		{"sine", key.RuneEvent('s', key.ModAlt), engine.Command{Op: engine.OpInsertOperator, Text: "sin"}},
		{"backspace", key.SpecialEvent(key.KeyBackspace, key.ModNone), engine.Command{Op: engine.OpBackspace}},
		{"arrow", key.SpecialEvent(key.KeyDown, key.ModNone), engine.Command{Op: engine.OpMove, Direction: formula.Down}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, err := d.Decode(tt.event)
			if err != nil {
				t.Fatal(err)
			}
			if act.Quit {
				t.Fatal("unexpected quit")
			}
			if act.Command != tt.want {
				t.Errorf("command = %+v, want %+v", act.Command, tt.want)
			}
		})
	}
}

func TestDecodeQuit(t *testing.T) {
	d := newDecoder(t)
	for _, e := range []key.Event{
		key.SpecialEvent(key.KeyEscape, key.ModNone),
		key.RuneEvent('Q', key.ModCtrl|key.ModShift),
	} {
		act, err := d.Decode(e)
		if err != nil || !act.Quit {
			t.Errorf("Decode(%s) = %+v, %v; want quit", e, act, err)
		}
	}
}

func TestDecodeUnmapped(t *testing.T) {
	d := newDecoder(t)
	for _, e := range []key.Event{
		key.RuneEvent(' ', key.ModNone),
		key.RuneEvent('z', key.ModCtrl),
		key.SpecialEvent(key.KeyTab, key.ModNone),
		key.SpecialEvent(key.KeyHome, key.ModNone),
		{},
	} {
		if _, err := d.Decode(e); !errors.Is(err, ErrUnmapped) {
			t.Errorf("Decode(%s) error = %v, want ErrUnmapped", e, err)
		}
	}
}

func TestNewDecoderRejectsUnknownAction(t *testing.T) {
	km := keymap.New("bad").Add("x", "teleport", "")
	if _, err := NewDecoder(km); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("error = %v, want ErrInvalidAction", err)
	}
}

func TestDecodeDrivesEngine(t *testing.T) {
	d := newDecoder(t)
	e := engine.New()
	keys := []key.Event{
		key.RuneEvent('a', key.ModNone),
		key.RuneEvent('/', key.ModNone),
		key.RuneEvent('2', key.ModNone),
		key.SpecialEvent(key.KeyRight, key.ModNone),
		key.RuneEvent('+', key.ModNone),
		key.RuneEvent('r', key.ModCtrl),
		key.RuneEvent('x', key.ModNone),
		key.RuneEvent(' ', key.ModNone),
	}
	for _, k := range keys {
		act, err := d.Decode(k)
		if errors.Is(err, ErrUnmapped) {
			continue
		}
		if err != nil {
			t.Fatal(err)
		}
		if err := e.Apply(act.Command); err != nil {
			t.Fatalf("Apply(%s): %v", act.Command, err)
		}
	}
	if want := "{a}/{2}+√{x}"; e.String() != want {
		t.Errorf("document = %q, want %q", e.String(), want)
	}
}
