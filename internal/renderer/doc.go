// Package renderer paints laid-out formulas into terminal cells.
//
// CellMetrics and CellStyle make the layout engine work in whole cells:
// every text run is one row tall, exponents sit a row higher and fraction
// bars take a row of their own. CellCanvas records the draw pass and snaps
// it to the grid, stretching brackets with the Unicode bracket pieces.
//
// Usage:
//
//	b, _ := backend.NewTerminal()
//	_ = b.Init()
//	r := renderer.New(b)
//	e := engine.New(engine.WithStyle(renderer.CellStyle()))
//	r.Render(e)
package renderer
