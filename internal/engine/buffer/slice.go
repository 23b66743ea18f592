package buffer

import (
	"fmt"
	"math"
	"strings"
)

// Slice returns the text in [lower, upper).
func (b *Buffer) Slice(lower, upper ByteOffset) (string, error) {
	if lower >= upper {
		return "", fmt.Errorf("%w: [%d,%d)", ErrRangeInvalid, lower, upper)
	}
	if lower < 0 || upper > b.length {
		return "", fmt.Errorf("%w: [%d,%d), length %d", ErrOffsetOutOfRange, lower, upper, b.length)
	}
	if err := b.checkBoundary(lower, upper); err != nil {
		return "", err
	}
	return b.slice(lower, upper), nil
}

// SliceFrom returns the text from lower to the end of the document.
func (b *Buffer) SliceFrom(lower ByteOffset) (string, error) {
	return b.Slice(lower, b.length)
}

// SliceTo returns the text from the start of the document to upper (exclusive).
func (b *Buffer) SliceTo(upper ByteOffset) (string, error) {
	return b.Slice(0, upper)
}

// SliceInclusive returns the text in [lower, upper].
func (b *Buffer) SliceInclusive(lower, upper ByteOffset) (string, error) {
	if upper == math.MaxInt64 {
		return "", fmt.Errorf("%w: inclusive upper bound %d cannot be incremented", ErrOffsetOutOfRange, upper)
	}
	return b.Slice(lower, upper+1)
}

// SliceToInclusive returns the text from the start of the document to upper
// (inclusive).
func (b *Buffer) SliceToInclusive(upper ByteOffset) (string, error) {
	return b.SliceInclusive(0, upper)
}

// SliceAll returns the whole document. Unlike String it fails on an empty
// document, as the range [0,0) is empty.
func (b *Buffer) SliceAll() (string, error) {
	return b.Slice(0, b.length)
}

// slice copies [lower, upper) out of the logs. The range must be valid.
func (b *Buffer) slice(lower, upper ByteOffset) string {
	var sb strings.Builder
	sb.Grow(int(upper - lower))

	var acc ByteOffset
	for _, p := range b.pieces {
		if acc >= upper {
			break
		}
		start := acc
		acc += p.Length
		log := b.log(p.Source)

		switch {
		case lower <= start && upper >= acc:
			// piece lies inside the range
			sb.Write(log[p.Offset:p.End()])
		case lower > start && lower < acc && upper >= acc:
			// piece spans the left edge
			sb.Write(log[p.Offset+lower-start : p.End()])
		case lower <= start && upper < acc:
			// piece spans the right edge
			sb.Write(log[p.Offset : p.Offset+upper-start])
		case lower > start && upper < acc:
			// piece contains the whole range
			sb.Write(log[p.Offset+lower-start : p.Offset+upper-start])
		}
	}

	return sb.String()
}
