package buffer

import (
	"fmt"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// checkBoundary validates offsets against the configured BoundaryMode.
// Offsets must already be within [0, length].
func (b *Buffer) checkBoundary(offsets ...ByteOffset) error {
	if b.boundary == BoundaryBytes {
		return nil
	}

	for _, off := range offsets {
		if off == 0 || off == b.length {
			continue
		}
		if !utf8.RuneStart(b.byteAt(off)) {
			return fmt.Errorf("%w: offset %d is inside a UTF-8 sequence", ErrSplitsCharacter, off)
		}
	}

	if b.boundary != BoundaryGraphemes {
		return nil
	}
	for _, off := range offsets {
		if off == 0 || off == b.length {
			continue
		}
		if !b.isGraphemeBoundary(off) {
			return fmt.Errorf("%w: offset %d is inside a grapheme cluster", ErrSplitsCharacter, off)
		}
	}
	return nil
}

// isGraphemeBoundary reports whether off starts a grapheme cluster.
// It segments the document from the start, since cluster boundaries depend
// on everything before them.
func (b *Buffer) isGraphemeBoundary(off ByteOffset) bool {
	rest := b.slice(0, b.length)
	var pos ByteOffset
	state := -1
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += ByteOffset(len(cluster))
		if pos == off {
			return true
		}
		if pos > off {
			return false
		}
	}
	return false
}
