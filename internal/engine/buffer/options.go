package buffer

import (
	"fmt"
	"strings"

	"github.com/dshills/piecetable/internal/logging"
)

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithBoundary sets how offsets are validated against content.
func WithBoundary(mode BoundaryMode) Option {
	return func(b *Buffer) {
		b.boundary = mode
	}
}

// WithLogger sets the logger used for edit tracing and corruption reports.
func WithLogger(l *logging.Logger) Option {
	return func(b *Buffer) {
		if l != nil {
			b.logger = l.WithComponent("buffer")
		}
	}
}

// BoundaryMode selects which offsets the buffer accepts.
type BoundaryMode uint8

const (
	// BoundaryBytes accepts any byte offset; content is never inspected.
	BoundaryBytes BoundaryMode = iota
	// BoundaryRunes rejects offsets inside a UTF-8 encoded rune.
	BoundaryRunes
	// BoundaryGraphemes rejects offsets inside an extended grapheme cluster.
	BoundaryGraphemes
)

// String returns the configuration name of the mode.
func (m BoundaryMode) String() string {
	switch m {
	case BoundaryBytes:
		return "bytes"
	case BoundaryRunes:
		return "runes"
	case BoundaryGraphemes:
		return "graphemes"
	default:
		return fmt.Sprintf("BoundaryMode(%d)", uint8(m))
	}
}

// ParseBoundaryMode parses a configuration name into a BoundaryMode.
func ParseBoundaryMode(s string) (BoundaryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bytes", "byte":
		return BoundaryBytes, nil
	case "runes", "rune", "utf8":
		return BoundaryRunes, nil
	case "graphemes", "grapheme":
		return BoundaryGraphemes, nil
	default:
		return BoundaryBytes, fmt.Errorf("unknown boundary mode %q", s)
	}
}
