// Package lua runs editing scripts against an engine.
//
// Scripts execute in a sandboxed gopher-lua state: only the base, table,
// string and math libraries are opened, the file-loading builtins are
// removed, and every run is bounded by a timeout. Bind exposes an engine to
// the script as the global table "mathkey":
//
//	mathkey.insert("a+b")   -- types each character
//	mathkey.frac()          -- greedy fraction
//	mathkey.insert("2")
//	mathkey.move("right")
//	print(mathkey.text())   -- a+{b}/{2}
//
// The full table is insert, paren, op, sqrt, root, frac, exp, backspace,
// move, text and report.
package lua
