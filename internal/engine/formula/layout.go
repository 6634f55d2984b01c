package formula

// Provider supplies text measurements for the metrics pass. The core never
// shapes glyphs itself.
type Provider interface {
	// Measure returns the extent of a run of text set in the default font.
	Measure(text string) Metrics

	// Font returns the ascent and descent of the default font, with Width
	// set to its approximate digit width. Empty sequences take this extent.
	Font() Metrics
}

// Style holds the layout constants used by the metrics pass.
type Style struct {
	// Spacing is the horizontal padding on each side of structural
	// elements.
	Spacing float64

	// OperatorSpacing is the horizontal padding on each side of operators.
	OperatorSpacing float64

	// ExponentScale scales exponent bodies and radical indices.
	ExponentScale float64

	// FractionSeparation is the vertical gap split around a fraction bar.
	FractionSeparation float64

	// BarRatio places the fraction bar above the baseline, as a fraction of
	// the font ascent.
	BarRatio float64

	// OverlineSpace is the headroom between a radicand and its overline.
	OverlineSpace float64
}

// DefaultStyle returns the layout constants for point-sized fonts.
func DefaultStyle() Style {
	return Style{
		Spacing:            2,
		OperatorSpacing:    2,
		ExponentScale:      0.8,
		FractionSeparation: 4,
		BarRatio:           0.3,
		OverlineSpace:      4,
	}
}

// MetricContext is the per-sequence state of the metrics pass. Each sequence
// starts a fresh context for its children.
type MetricContext struct {
	// Prev is the extent of the previously laid-out sibling, or the font
	// extent before the first child.
	Prev Metrics

	style  *Style
	parens []*Paren
}

func newMetricContext(p Provider, style *Style) *MetricContext {
	return &MetricContext{Prev: p.Font(), style: style}
}

func (mc *MetricContext) pushParen(p *Paren) {
	mc.parens = append(mc.parens, p)
}

func (mc *MetricContext) popParen() (*Paren, bool) {
	if len(mc.parens) == 0 {
		return nil, false
	}
	p := mc.parens[len(mc.parens)-1]
	mc.parens = mc.parens[:len(mc.parens)-1]
	return p, true
}

// enclose grows the innermost open bracket to cover m.
func (mc *MetricContext) enclose(m Metrics) {
	if len(mc.parens) == 0 {
		return
	}
	top := &mc.parens[len(mc.parens)-1].metrics
	top.Ascent = max(top.Ascent, m.Ascent)
	top.Descent = max(top.Descent, m.Descent)
}

// Layout runs the metrics pass over the tree rooted at root.
func Layout(root Element, p Provider, style Style) {
	root.computeMetrics(p, newMetricContext(p, &style))
}

// Bounds returns the bounding box of a laid-out element.
func Bounds(e Element) (width, height float64) {
	m := e.Metrics()
	return m.Width, m.Height()
}
