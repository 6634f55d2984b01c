package lua

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func TestStateDoString(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if v, ok := state.GetGlobal("x").(glua.LNumber); !ok || float64(v) != 2 {
		t.Errorf("x = %v, want 2", state.GetGlobal("x"))
	}
}

func TestStateDoStringSyntaxError(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`invalid lua code !!!`); err == nil {
		t.Error("DoString() with invalid code should return error")
	}
}

func TestStateSandbox(t *testing.T) {
	state := NewState()
	defer state.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "io", "os", "debug"} {
		if state.GetGlobal(name) != glua.LNil {
			t.Errorf("%s should not be available", name)
		}
	}
	for _, name := range []string{"string", "table", "math", "pairs"} {
		if state.GetGlobal(name) == glua.LNil {
			t.Errorf("%s should be available", name)
		}
	}
	if err := state.DoString(`os.exit(1)`); err == nil {
		t.Error("os.exit should fail inside the sandbox")
	}
}

func TestStatePrint(t *testing.T) {
	var out bytes.Buffer
	state := NewState(WithOutput(&out))
	defer state.Close()

	if err := state.DoString(`print("a", 1, true)`); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "a\t1\ttrue\n" {
		t.Errorf("print wrote %q", got)
	}
}

func TestStateTimeout(t *testing.T) {
	state := NewState(WithTimeout(50 * time.Millisecond))
	defer state.Close()

	err := state.DoString(`while true do end`)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("error = %v, want ErrTimeout", err)
	}
}

func TestStateDoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.lua")
	if err := os.WriteFile(path, []byte(`z = "ok"`), 0o644); err != nil {
		t.Fatal(err)
	}

	state := NewState()
	defer state.Close()

	if err := state.DoFile(path); err != nil {
		t.Fatal(err)
	}
	if state.GetGlobal("z").String() != "ok" {
		t.Errorf("z = %v", state.GetGlobal("z"))
	}
	if err := state.DoFile(filepath.Join(t.TempDir(), "missing.lua")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestStateClose(t *testing.T) {
	state := NewState()
	if err := state.Close(); err != nil {
		t.Fatal(err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := state.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("error = %v, want ErrStateClosed", err)
	}
	if state.GetGlobal("x") != glua.LNil {
		t.Error("closed state should return nil globals")
	}
	if err := state.Close(); err != nil {
		t.Error("second Close should be a no-op")
	}
}

func TestStateRegisterModule(t *testing.T) {
	state := NewState()
	defer state.Close()

	state.RegisterModule("util", map[string]glua.LGFunction{
		"upper": func(L *glua.LState) int {
			L.Push(glua.LString(strings.ToUpper(L.CheckString(1))))
			return 1
		},
	})
	if err := state.DoString(`r = util.upper("abc")`); err != nil {
		t.Fatal(err)
	}
	if state.GetGlobal("r").String() != "ABC" {
		t.Errorf("r = %v", state.GetGlobal("r"))
	}
}
