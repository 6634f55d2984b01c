package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification such as "a", "Ctrl+R" or "<C-r>".
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "":
		return Event{}, ErrEmptySpec
	case len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">"):
		return parseParts(strings.Split(spec[1:len(spec)-1], "-"), spec)
	case utf8.RuneCountInString(spec) > 1 && strings.Contains(spec, "+"):
		return parseParts(strings.Split(spec, "+"), spec)
	}
	return parseKey(spec, ModNone)
}

// MustParse is like Parse but panics on an invalid specification.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return e
}

// parseParts treats every part but the last as a modifier name.
func parseParts(parts []string, spec string) (Event, error) {
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		m := ModifierFromName(p)
		if m == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, p, spec)
		}
		mods |= m
	}
	return parseKey(parts[len(parts)-1], mods)
}

func parseKey(name string, mods Modifier) (Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, ErrInvalidSpec
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return RuneEvent(r, mods).Normalize(), nil
	}

	lower := strings.ToLower(name)
	if k, ok := keyAliases[lower]; ok {
		return SpecialEvent(k, mods), nil
	}
	if r, ok := runeAliases[lower]; ok {
		return RuneEvent(r, mods).Normalize(), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}

// IsPrintable reports whether r can be inserted as text.
func IsPrintable(r rune) bool {
	return r != ' ' && unicode.IsPrint(r)
}
