package formula

import (
	"fmt"

	"github.com/tidwall/sjson"
)

type reportField struct {
	path  string
	value any
}

// Report renders the metrics tree rooted at e as JSON. Each node carries its
// kind and metrics; sequences add their children and cursor state, leaves
// their text, and structural elements one member per inner sequence.
func Report(e Element) (string, error) {
	m := e.Metrics()
	fields := []reportField{
		{"kind", e.Kind().String()},
		{"ascent", m.Ascent},
		{"descent", m.Descent},
		{"width", m.Width},
		{"spacing", e.base().hSpacing},
	}
	var children []reportField
	switch e := e.(type) {
	case *Atom:
		fields = append(fields, reportField{"text", e.text})
	case *Paren:
		fields = append(fields, reportField{"text", string(e.char)})
	case *Sequence:
		fields = append(fields,
			reportField{"cursor", e.hasCursor},
			reportField{"cursor_pos", e.cursorPos},
		)
	case *Fraction:
		children = []reportField{{"numerator", e.numerator}, {"denominator", e.denominator}}
	case *Exponent:
		children = []reportField{{"exponent", e.body}}
	case *Radical:
		if e.index != nil {
			children = append(children, reportField{"index", e.index})
		}
		children = append(children, reportField{"radicand", e.radicand})
	}

	doc := "{}"
	var err error
	for _, f := range fields {
		if doc, err = sjson.Set(doc, f.path, f.value); err != nil {
			return "", fmt.Errorf("report %s: %w", f.path, err)
		}
	}

	if s, ok := e.(*Sequence); ok {
		if doc, err = sjson.SetRaw(doc, "children", "[]"); err != nil {
			return "", err
		}
		for _, c := range s.elements {
			children = append(children, reportField{"children.-1", c})
		}
	}
	for _, c := range children {
		raw, err := Report(c.value.(Element))
		if err != nil {
			return "", err
		}
		if doc, err = sjson.SetRaw(doc, c.path, raw); err != nil {
			return "", fmt.Errorf("report %s: %w", c.path, err)
		}
	}
	return doc, nil
}
