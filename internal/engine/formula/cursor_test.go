package formula

import (
	"errors"
	"testing"
)

func TestCursorUnplaced(t *testing.T) {
	cur := NewCursor()
	if err := cur.Move(Right); !errors.Is(err, ErrNoCursor) {
		t.Errorf("Move error = %v, want ErrNoCursor", err)
	}
	if err := cur.Backspace(); !errors.Is(err, ErrNoCursor) {
		t.Errorf("Backspace error = %v, want ErrNoCursor", err)
	}
	if err := cur.Insert(NewAtom("a")); !errors.Is(err, ErrNoCursor) {
		t.Errorf("Insert error = %v, want ErrNoCursor", err)
	}
	if err := cur.GreedyInsert(KindFraction); !errors.Is(err, ErrNoCursor) {
		t.Errorf("GreedyInsert error = %v, want ErrNoCursor", err)
	}
	if cur.Pos() != 0 || cur.Owner() != nil {
		t.Error("unplaced cursor should report no owner at position 0")
	}
}

func TestNavigateFraction(t *testing.T) {
	f := NewFraction(atoms("b"), atoms("c"))
	root, cur := doc(0, NewAtom("a"), f, NewAtom("d"))

	steps := []struct {
		dir   Direction
		owner *Sequence
		pos   int
	}{
		{Right, root, 1},
		{Right, f.Numerator(), 0},
		{Down, f.Denominator(), 0},
		{Up, f.Numerator(), 0},
		{Right, f.Numerator(), 1},
		{Right, root, 2},
		{Left, f.Numerator(), 1},
		{Left, f.Numerator(), 0},
		{Left, root, 1},
		{Left, root, 0},
	}
	for i, st := range steps {
		if err := cur.Move(st.dir); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if cur.Owner() != st.owner || cur.Pos() != st.pos {
			t.Fatalf("step %d (%s): cursor at %q:%d, want %q:%d",
				i, st.dir, describeOwner(cur.Owner()), cur.Pos(), describeOwner(st.owner), st.pos)
		}
		mustCheck(t, root)
	}
}

func TestNavigateRootBoundary(t *testing.T) {
	root, cur := doc(0, atoms("a", "b")...)

	for _, dir := range []Direction{Left, Up, Down, None} {
		if err := cur.Move(dir); err != nil {
			t.Fatal(err)
		}
		expectCursor(t, cur, root, 0)
	}

	root.PlaceCursor(cur, root.Len())
	for _, dir := range []Direction{Right, Up, Down} {
		if err := cur.Move(dir); err != nil {
			t.Fatal(err)
		}
		expectCursor(t, cur, root, 2)
	}
}

func TestNavigateExponent(t *testing.T) {
	x := NewExponent(atoms("n"))
	root, cur := doc(2, NewAtom("a"), x)

	_ = cur.Move(Left)
	expectCursor(t, cur, x.Body(), 1)

	// Nothing above or below an exponent in the root.
	_ = cur.Move(Up)
	expectCursor(t, cur, x.Body(), 1)

	_ = cur.Move(Right)
	expectCursor(t, cur, root, 2)
}

func TestNavigateExponentInDenominator(t *testing.T) {
	x := NewExponent(atoms("n"))
	f := NewFraction(atoms("a"), []Element{NewAtom("b"), x})
	root, cur := doc(0, f)
	x.Body().PlaceCursor(cur, 0)

	_ = cur.Move(Up)
	expectCursor(t, cur, f.Numerator(), 0)
	mustCheck(t, root)
}

func TestNavigateRadical(t *testing.T) {
	t.Run("square root", func(t *testing.T) {
		r := NewRadical(atoms("x"))
		root, cur := doc(0, r)
		_ = cur.Move(Right)
		expectCursor(t, cur, r.Radicand(), 0)
		_ = cur.Move(Up)
		expectCursor(t, cur, r.Radicand(), 0)
		_ = cur.Move(Right)
		_ = cur.Move(Right)
		expectCursor(t, cur, root, 1)
	})

	t.Run("with index", func(t *testing.T) {
		r := NewRootOf(atoms("3"), atoms("x"))
		root, cur := doc(0, r)
		_ = cur.Move(Right)
		expectCursor(t, cur, r.Radicand(), 0)
		_ = cur.Move(Up)
		expectCursor(t, cur, r.RadicalIndex(), 0)
		_ = cur.Move(Down)
		expectCursor(t, cur, r.Radicand(), 0)
		_ = cur.Move(Left)
		expectCursor(t, cur, root, 0)
		mustCheck(t, root)
	})
}

func TestFocus(t *testing.T) {
	a, b := NewAtom("a"), NewAtom("b")
	f := NewFraction(atoms("x"), atoms("y"))
	root := NewSequence(a, b, f)
	cur := NewCursor()

	cur.Focus(root)
	expectCursor(t, cur, root, 0)

	cur.Focus(a)
	expectCursor(t, cur, root, 1)

	cur.Focus(f)
	expectCursor(t, cur, f.Numerator(), 0)

	// Focusing the sequence that already holds the cursor keeps it in place.
	f.Numerator().PlaceCursor(cur, 1)
	cur.Focus(f.Numerator())
	expectCursor(t, cur, f.Numerator(), 1)

	if root.HasCursor() {
		t.Error("root still reports the cursor")
	}
	mustCheck(t, root)
}
