package keymap

import (
	"errors"
	"testing"

	"github.com/dshills/mathkey/internal/input/key"
)

func TestDefaultCompiles(t *testing.T) {
	km := Default()
	if err := km.Compile(); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		event  key.Event
		action string
	}{
		{key.RuneEvent('/', key.ModNone), "fraction"},
		{key.RuneEvent('^', key.ModShift), "exponent"},
		{key.RuneEvent('R', key.ModCtrl|key.ModShift), "radical"},
		{key.RuneEvent('r', key.ModCtrl), "radical"},
		{key.SpecialEvent(key.KeyBackspace, key.ModNone), "backspace"},
		{key.SpecialEvent(key.KeyUp, key.ModNone), "up"},
		{key.SpecialEvent(key.KeyEscape, key.ModNone), "quit"},
		{key.RuneEvent('q', key.ModCtrl), "quit"},
	}
	for _, tt := range tests {
		b, ok := km.Lookup(tt.event)
		if !ok {
			t.Errorf("no binding for %s", tt.event)
			continue
		}
		if b.Action != tt.action {
			t.Errorf("%s -> %q, want %q", tt.event, b.Action, tt.action)
		}
	}

	if _, ok := km.Lookup(key.RuneEvent('x', key.ModNone)); ok {
		t.Error("plain letters should not be bound")
	}
	if _, ok := km.Lookup(key.SpecialEvent(key.KeyLeft, key.ModShift)); ok {
		t.Error("Shift+Left should not match Left")
	}
}

func TestMerge(t *testing.T) {
	km := Default()
	err := km.Merge(map[string]string{
		"<C-r>":  "operator:sqrt",
		"Escape": Unbind,
		"Ctrl+F": "fraction",
	})
	if err != nil {
		t.Fatal(err)
	}

	if b, _ := km.Lookup(key.RuneEvent('r', key.ModCtrl)); b.Action != "operator:sqrt" {
		t.Errorf("Ctrl+R -> %q, want operator:sqrt", b.Action)
	}
	if _, ok := km.Lookup(key.SpecialEvent(key.KeyEscape, key.ModNone)); ok {
		t.Error("Escape should be unbound")
	}
	if b, _ := km.Lookup(key.RuneEvent('f', key.ModCtrl)); b.Action != "fraction" {
		t.Errorf("Ctrl+F -> %q, want fraction", b.Action)
	}
	if b, _ := km.Lookup(key.RuneEvent('q', key.ModCtrl)); b.Action != "quit" {
		t.Error("unrelated bindings should survive a merge")
	}
}

func TestMergeInvalid(t *testing.T) {
	km := Default()
	if err := km.Merge(map[string]string{"Hyper+x": "quit"}); !errors.Is(err, ErrInvalidBinding) {
		t.Errorf("error = %v, want ErrInvalidBinding", err)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []*Keymap{
		New("bad key").Add("nosuchkey", "quit", ""),
		New("no action").Add("a", "", ""),
	}
	for _, km := range tests {
		if err := km.Compile(); !errors.Is(err, ErrInvalidBinding) {
			t.Errorf("%s: error = %v, want ErrInvalidBinding", km.Name, err)
		}
		if _, ok := km.Lookup(key.RuneEvent('a', key.ModNone)); ok {
			t.Errorf("%s: invalid keymap should not match", km.Name)
		}
	}
}

func TestLaterBindingWins(t *testing.T) {
	km := New("t").Add("x", "first", "").Add("x", "second", "")
	if b, _ := km.Lookup(key.RuneEvent('x', key.ModNone)); b.Action != "second" {
		t.Errorf("action = %q, want second", b.Action)
	}
}

func TestActions(t *testing.T) {
	got := New("t").Add("a", "quit", "").Add("b", "left", "").Add("c", "quit", "").Actions()
	if len(got) != 2 || got[0] != "quit" || got[1] != "left" {
		t.Errorf("Actions() = %v", got)
	}
}
