package formula

import (
	"testing"

	"github.com/tidwall/gjson"
)

func layout(root Element) {
	Layout(root, newFixedProvider(), DefaultStyle())
}

func expectMetrics(t *testing.T, name string, got, want Metrics) {
	t.Helper()
	if !approx(got.Ascent, want.Ascent) || !approx(got.Descent, want.Descent) || !approx(got.Width, want.Width) {
		t.Errorf("%s metrics = %+v, want %+v", name, got, want)
	}
}

func TestLayoutSequence(t *testing.T) {
	tests := []struct {
		name string
		root *Sequence
		want Metrics
	}{
		{"empty", NewSequence(), Metrics{8, 2, 10}},
		{"atoms", NewSequence(atoms("a", "b")...), Metrics{8, 2, 20}},
		{"operator spacing", NewSequence(NewAtom("a"), NewOperator("+"), NewAtom("b")), Metrics{8, 2, 34}},
		{"fraction", NewSequence(NewFraction(atoms("a"), atoms("b"))), Metrics{14.4, 9.6, 14}},
		{"radical", NewSequence(NewRadical(atoms("x"))), Metrics{12, 2, 24}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout(tt.root)
			expectMetrics(t, "root", tt.root.Metrics(), tt.want)
		})
	}
}

func TestLayoutFraction(t *testing.T) {
	f := NewFraction(atoms("a"), atoms("b", "c"))
	layout(NewSequence(f))
	expectMetrics(t, "fraction", f.Metrics(), Metrics{14.4, 9.6, 20})

	w, h := Bounds(f)
	if !approx(w, 20) || !approx(h, 24) {
		t.Errorf("Bounds = %v x %v, want 20 x 24", w, h)
	}
}

func TestLayoutExponent(t *testing.T) {
	x := NewExponent(atoms("n"))
	root := NewSequence(NewAtom("a"), x)
	layout(root)
	expectMetrics(t, "exponent", x.Metrics(), Metrics{12, 2, 8})
	expectMetrics(t, "root", root.Metrics(), Metrics{12, 2, 22})
}

func TestLayoutParenMatchesGroup(t *testing.T) {
	open, shut := MustParen('('), MustParen(')')
	f := NewFraction(atoms("a"), atoms("b"))
	layout(NewSequence(open, f, shut))

	want := Metrics{Ascent: 14.4, Descent: 9.6, Width: 10}
	expectMetrics(t, "open", open.Metrics(), want)
	expectMetrics(t, "close", shut.Metrics(), want)
	expectMetrics(t, "natural", shut.Natural(), Metrics{8, 2, 10})
}

func TestLayoutParenFallback(t *testing.T) {
	p := newFixedProvider()
	p.sizes = map[string]Metrics{
		"7": {Ascent: 20, Descent: 5, Width: 10},
		")": {Ascent: 3, Descent: 1, Width: 5},
	}

	t.Run("previous sibling", func(t *testing.T) {
		shut := MustParen(')')
		Layout(NewSequence(NewAtom("7"), shut), p, DefaultStyle())
		expectMetrics(t, "close", shut.Metrics(), Metrics{20, 5, 5})
	})

	t.Run("first child", func(t *testing.T) {
		shut := MustParen(')')
		Layout(NewSequence(shut, NewAtom("7")), p, DefaultStyle())
		expectMetrics(t, "close", shut.Metrics(), Metrics{8, 2, 5})
	})

	t.Run("nested", func(t *testing.T) {
		inner, outer := MustParen(')'), MustParen(')')
		Layout(NewSequence(MustParen('('), MustParen('('), NewAtom("7"), inner, outer), p, DefaultStyle())
		expectMetrics(t, "inner", inner.Metrics(), Metrics{20, 5, 5})
		expectMetrics(t, "outer", outer.Metrics(), Metrics{20, 5, 5})
	})

	t.Run("groups in separate sequences", func(t *testing.T) {
		shut := MustParen(')')
		f := NewFraction([]Element{MustParen('('), NewAtom("7")}, []Element{shut})
		Layout(NewSequence(f), p, DefaultStyle())
		expectMetrics(t, "close", shut.Metrics(), Metrics{8, 2, 5})
	})
}

func TestDrawCaret(t *testing.T) {
	root, _ := doc(1, atoms("a", "b")...)
	layout(root)

	rec := NewRecorder()
	Draw(root, rec)

	if rec.Depth() != 0 {
		t.Errorf("unbalanced Save/Restore: depth %d", rec.Depth())
	}
	carets := rec.Find(OpCaret)
	if len(carets) != 1 {
		t.Fatalf("got %d carets, want 1", len(carets))
	}
	c := carets[0]
	if !approx(c.X, 10) || !approx(c.Y, 8) || !approx(c.Ascent, 8) || !approx(c.Descent, 2) {
		t.Errorf("caret = %+v, want at (10, 8) spanning 8/2", c)
	}

	texts := rec.Find(OpText)
	if len(texts) != 2 || texts[0].Text != "𝑎" || !approx(texts[1].X, 10) {
		t.Errorf("texts = %+v", texts)
	}
}

func TestDrawCaretEmpty(t *testing.T) {
	root, _ := doc(0)
	layout(root)
	rec := NewRecorder()
	Draw(root, rec)

	carets := rec.Find(OpCaret)
	if len(carets) != 1 {
		t.Fatalf("got %d carets, want 1", len(carets))
	}
	if !approx(carets[0].Ascent, 8) || !approx(carets[0].Descent, 2) {
		t.Errorf("empty caret = %+v, want font extent", carets[0])
	}
}

func TestDrawWithoutCursor(t *testing.T) {
	root := NewSequence(atoms("a")...)
	layout(root)
	rec := NewRecorder()
	Draw(root, rec)
	if n := len(rec.Find(OpCaret)); n != 0 {
		t.Errorf("got %d carets, want none", n)
	}
}

func TestDrawFraction(t *testing.T) {
	root := NewSequence(NewFraction(atoms("a"), atoms("b")))
	layout(root)
	rec := NewRecorder()
	Draw(root, rec)

	rules := rec.Find(OpRule)
	if len(rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(rules))
	}
	if !approx(rules[0].X, 2) || !approx(rules[0].Y, 12) || !approx(rules[0].Width, 10) {
		t.Errorf("bar = %+v, want at (2, 12) width 10", rules[0])
	}

	texts := rec.Find(OpText)
	if len(texts) != 2 {
		t.Fatalf("got %d texts, want 2", len(texts))
	}
	if !approx(texts[0].Y, 8) || !approx(texts[1].Y, 22) {
		t.Errorf("numerator at y=%v, denominator at y=%v, want 8 and 22", texts[0].Y, texts[1].Y)
	}
}

func TestDrawExponentScaled(t *testing.T) {
	root := NewSequence(NewAtom("a"), NewExponent(atoms("n")))
	layout(root)
	rec := NewRecorder()
	Draw(root, rec)

	texts := rec.Find(OpText)
	if len(texts) != 2 {
		t.Fatalf("got %d texts, want 2", len(texts))
	}
	n := texts[1]
	if !approx(n.Scale, 0.8) || !approx(n.X, 12) || !approx(n.Y, 6.4) {
		t.Errorf("exponent text = %+v, want scale 0.8 at (12, 6.4)", n)
	}
}

func TestDrawRadical(t *testing.T) {
	root := NewSequence(NewRadical(atoms("x")))
	layout(root)
	rec := NewRecorder()
	Draw(root, rec)

	glyphs := rec.Find(OpGlyph)
	if len(glyphs) != 1 || glyphs[0].Text != "√" {
		t.Fatalf("glyphs = %+v, want one radical sign", glyphs)
	}
	if !approx(glyphs[0].Ascent, 12) || !approx(glyphs[0].Descent, 2) {
		t.Errorf("sign spans %v/%v, want 12/2", glyphs[0].Ascent, glyphs[0].Descent)
	}
	if rules := rec.Find(OpRule); len(rules) != 1 || !approx(rules[0].Width, 10) {
		t.Errorf("overline = %+v, want width 10", rules)
	}
}

func TestRecorderReset(t *testing.T) {
	rec := NewRecorder()
	rec.Save()
	rec.Translate(5, 5)
	rec.Text("x")
	rec.Reset()
	if len(rec.Ops()) != 0 || rec.Depth() != 0 {
		t.Fatal("Reset left state behind")
	}
	rec.Text("y")
	if op := rec.Ops()[0]; op.X != 0 || op.Y != 0 {
		t.Errorf("transform not reset: %+v", op)
	}
}

func TestReport(t *testing.T) {
	root, _ := doc(2, NewAtom("a"), NewFraction(atoms("b"), []Element{MustParen('('), NewAtom("c")}))
	layout(root)

	js, err := Report(root)
	if err != nil {
		t.Fatal(err)
	}
	if !gjson.Valid(js) {
		t.Fatalf("invalid JSON: %s", js)
	}

	tests := []struct {
		path string
		want string
	}{
		{"kind", "sequence"},
		{"cursor", "true"},
		{"cursor_pos", "2"},
		{"children.#", "2"},
		{"children.0.kind", "atom"},
		{"children.0.text", "𝑎"},
		{"children.1.kind", "fraction"},
		{"children.1.numerator.children.0.text", "𝑏"},
		{"children.1.denominator.cursor", "false"},
		{"children.1.denominator.children.0.kind", "paren"},
		{"children.1.denominator.children.0.text", "("},
		{"width", "34"},
	}
	for _, tt := range tests {
		if got := gjson.Get(js, tt.path).String(); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestReportRadicalIndex(t *testing.T) {
	root := NewSequence(NewRootOf(atoms("3"), atoms("x")), NewExponent(atoms("2")))
	layout(root)
	js, err := Report(root)
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.Get(js, "children.0.index.children.0.text").String(); got != "3" {
		t.Errorf("index text = %q, want 3", got)
	}
	if got := gjson.Get(js, "children.0.radicand.children.0.text").String(); got != "𝑥" {
		t.Errorf("radicand text = %q", got)
	}
	if got := gjson.Get(js, "children.1.exponent.children.0.text").String(); got != "2" {
		t.Errorf("exponent text = %q", got)
	}
}
