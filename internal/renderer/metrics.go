package renderer

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/mathkey/internal/engine/formula"
)

// Every run of text sits in a single cell row: half a row above the
// baseline and half below.
const halfRow = 0.5

// CellMetrics measures text in terminal cells. It implements
// formula.Provider.
type CellMetrics struct{}

// Measure returns one row of height and the display width of text in cells.
func (CellMetrics) Measure(text string) formula.Metrics {
	return formula.Metrics{
		Ascent:  halfRow,
		Descent: halfRow,
		Width:   float64(uniseg.StringWidth(text)),
	}
}

// Font returns the extent of an empty slot: one cell.
func (CellMetrics) Font() formula.Metrics {
	return formula.Metrics{Ascent: halfRow, Descent: halfRow, Width: 1}
}

// CellStyle returns layout constants that keep every element on whole
// rows. Exponents are raised a row instead of shrunk, fraction bars take a
// row of their own, and operators get one blank column on each side.
func CellStyle() formula.Style {
	return formula.Style{
		Spacing:            0,
		OperatorSpacing:    1,
		ExponentScale:      1,
		FractionSeparation: 1,
		BarRatio:           0,
		OverlineSpace:      1,
	}
}
