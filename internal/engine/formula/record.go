package formula

// OpKind identifies a recorded draw call.
type OpKind int

const (
	OpText OpKind = iota
	OpGlyph
	OpRule
	OpCaret
)

// String returns the lowercase op name.
func (k OpKind) String() string {
	switch k {
	case OpText:
		return "text"
	case OpGlyph:
		return "glyph"
	case OpRule:
		return "rule"
	case OpCaret:
		return "caret"
	default:
		return "unknown"
	}
}

// Op is a draw call resolved to absolute coordinates. X and Y locate the
// local origin; Width, Ascent and Descent are scaled by the transform in
// effect, and Scale is its vertical factor.
type Op struct {
	Kind    OpKind
	Text    string
	X, Y    float64
	Width   float64
	Ascent  float64
	Descent float64
	Scale   float64
}

type transform struct {
	tx, ty float64
	sx, sy float64
}

func (t transform) apply(x, y float64) (float64, float64) {
	return t.tx + t.sx*x, t.ty + t.sy*y
}

// Recorder is a Canvas that records draw calls. Renderers replay the
// recording; tests inspect it.
type Recorder struct {
	ops   []Op
	cur   transform
	stack []transform
}

// NewRecorder returns an empty recorder with the identity transform.
func NewRecorder() *Recorder {
	return &Recorder{cur: transform{sx: 1, sy: 1}}
}

// Ops returns the recorded calls in paint order.
func (r *Recorder) Ops() []Op { return r.ops }

// Depth returns the number of unmatched Save calls.
func (r *Recorder) Depth() int { return len(r.stack) }

// Reset discards the recording.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
	r.cur = transform{sx: 1, sy: 1}
	r.stack = r.stack[:0]
}

// Find returns the recorded calls of kind k.
func (r *Recorder) Find(k OpKind) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.cur)
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.cur = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Recorder) Translate(dx, dy float64) {
	r.cur.tx += r.cur.sx * dx
	r.cur.ty += r.cur.sy * dy
}

func (r *Recorder) Scale(sx, sy float64) {
	r.cur.sx *= sx
	r.cur.sy *= sy
}

func (r *Recorder) Text(s string) {
	r.record(Op{Kind: OpText, Text: s})
}

func (r *Recorder) Glyph(s string, ascent, descent float64) {
	r.record(Op{Kind: OpGlyph, Text: s, Ascent: ascent, Descent: descent})
}

func (r *Recorder) Rule(width float64) {
	r.record(Op{Kind: OpRule, Width: width})
}

func (r *Recorder) Caret(ascent, descent float64) {
	r.record(Op{Kind: OpCaret, Ascent: ascent, Descent: descent})
}

func (r *Recorder) record(op Op) {
	op.X, op.Y = r.cur.apply(0, 0)
	op.Width *= r.cur.sx
	op.Ascent *= r.cur.sy
	op.Descent *= r.cur.sy
	op.Scale = r.cur.sy
	r.ops = append(r.ops, op)
}
