// Package engine provides the edit session for a structural formula
// editor.
//
// An Engine owns one formula tree and the single cursor editing it. Commands
// decoded from key presses, scripts or tests are applied to the engine, which
// routes them to the cursor or to the sequence holding it. Rendering is left
// to the caller: after every mutation the caller lays the tree out again with
// a formula.Provider and draws it onto a formula.Canvas.
//
// # Basic Usage
//
//	e := engine.New()
//
//	e.InsertChar("a")
//	e.GreedyInsert(formula.KindFraction) // cursor moves into the denominator
//	e.InsertChar("2")
//	e.String() // "{a}/{2}"
//
//	e.Layout(provider)
//	e.Draw(canvas)
//
// # Commands
//
// Every edit is also available as a Command value, which is what the key
// decoder and the script bridge produce:
//
//	cmd, _ := engine.ParseCommand("fraction")
//	e.Apply(cmd)
//
// # Errors
//
// Malformed commands are rejected before the tree is touched:
//
//   - ErrInvalidChar: text that is not a single insertable grapheme
//   - ErrUnknownCommand: an action name or Op with no meaning
//   - formula.ErrInvalidParen: a bracket command with a non-bracket rune
//   - formula.ErrUnknownKind: a greedy insertion of a kind that is not greedy
//
// Moving or deleting past the edge of the document is not an error; the
// command simply has no effect.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. The application event loop is
// its only caller.
package engine
