package engine

import (
	"github.com/dshills/mathkey/internal/engine/formula"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithRoot starts the engine on an existing tree. The cursor is placed at the
// end of root.
func WithRoot(root *formula.Sequence) Option {
	return func(e *Engine) {
		if root != nil && root.Owner() == nil {
			e.root = root
		}
	}
}

// WithStyle sets the layout constants used by Layout.
func WithStyle(style formula.Style) Option {
	return func(e *Engine) {
		e.style = style
	}
}

// WithLogger sets the logger that receives one debug line per applied
// command and a warning per rejected one.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}
