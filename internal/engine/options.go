package engine

import (
	"github.com/dshills/piecetable/internal/engine/buffer"
	"github.com/dshills/piecetable/internal/logging"
)

// Option configures an Engine.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithBoundary sets the boundary mode used to validate offsets.
func WithBoundary(mode buffer.BoundaryMode) Option {
	return func(e *Engine) {
		e.boundary = mode
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		e.logger = logging.OrNull(l)
	}
}

// WithReadOnly makes the engine read-only.
// Edits, undo and redo will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
