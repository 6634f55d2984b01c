package lua

import (
	"github.com/rivo/uniseg"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mathkey/internal/engine"
	"github.com/dshills/mathkey/internal/engine/formula"
)

// ModuleName is the global table scripts use to reach the engine.
const ModuleName = "mathkey"

// Bind exposes e to scripts run in s.
func Bind(s *State, e *engine.Engine) {
	b := &bridge{e: e}
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"insert":    b.insert,
		"paren":     b.paren,
		"op":        b.op,
		"sqrt":      b.sqrt,
		"root":      b.root,
		"frac":      b.greedy(formula.KindFraction),
		"exp":       b.greedy(formula.KindExponent),
		"backspace": b.backspace,
		"move":      b.move,
		"text":      b.text,
		"report":    b.report,
	})
}

type bridge struct {
	e *engine.Engine
}

// check raises err as a Lua error so the script stops at the failing call.
func check(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
}

// insert types every grapheme of its argument.
func (b *bridge) insert(L *lua.LState) int {
	g := uniseg.NewGraphemes(L.CheckString(1))
	for g.Next() {
		check(L, b.e.Apply(engine.Command{Op: engine.OpInsertChar, Text: g.Str()}))
	}
	return 0
}

func (b *bridge) paren(L *lua.LState) int {
	s := L.CheckString(1)
	cmd, err := engine.ParseCommand("paren:" + s)
	if err != nil {
		L.ArgError(1, err.Error())
	}
	check(L, b.e.Apply(cmd))
	return 0
}

func (b *bridge) op(L *lua.LState) int {
	check(L, b.e.Apply(engine.Command{Op: engine.OpInsertOperator, Text: L.CheckString(1)}))
	return 0
}

func (b *bridge) sqrt(L *lua.LState) int {
	check(L, b.e.Apply(engine.Command{Op: engine.OpInsertRadical}))
	return 0
}

// root takes the index, such as 3 for a cube root.
func (b *bridge) root(L *lua.LState) int {
	index := L.CheckString(1)
	if index == "" {
		L.ArgError(1, "empty root index")
	}
	check(L, b.e.Apply(engine.Command{Op: engine.OpInsertRadical, Text: index}))
	return 0
}

func (b *bridge) greedy(k formula.Kind) lua.LGFunction {
	return func(L *lua.LState) int {
		check(L, b.e.Apply(engine.Command{Op: engine.OpGreedyInsert, Kind: k}))
		return 0
	}
}

// backspace takes an optional repeat count.
func (b *bridge) backspace(L *lua.LState) int {
	repeat(L, L.OptInt(1, 1), func() {
		check(L, b.e.Apply(engine.Command{Op: engine.OpBackspace}))
	})
	return 0
}

// move takes a direction name and an optional repeat count.
func (b *bridge) move(L *lua.LState) int {
	dir, err := formula.ParseDirection(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
	}
	repeat(L, L.OptInt(2, 1), func() {
		check(L, b.e.Apply(engine.Command{Op: engine.OpMove, Direction: dir}))
	})
	return 0
}

// repeat runs fn n times, stopping with a Lua error once the script's
// context is done.
func repeat(L *lua.LState, n int, fn func()) {
	ctx := L.Context()
	for i := 0; i < n; i++ {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				L.RaiseError("%s", err.Error())
			}
		}
		fn()
	}
}

func (b *bridge) text(L *lua.LState) int {
	L.Push(lua.LString(b.e.String()))
	return 1
}

// report returns the layout report of the last Layout call as JSON.
func (b *bridge) report(L *lua.LState) int {
	js, err := b.e.Report()
	check(L, err)
	L.Push(lua.LString(js))
	return 1
}
