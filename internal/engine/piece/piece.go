package piece

import "fmt"

// Source identifies the text log a Piece points into.
type Source uint8

const (
	Original Source = iota // text supplied at construction
	Addition               // append-only log of inserted text
)

// String returns the name of the source.
func (s Source) String() string {
	switch s {
	case Original:
		return "Original"
	case Addition:
		return "Addition"
	default:
		return fmt.Sprintf("Source(%d)", uint8(s))
	}
}

// Piece is an immutable span (Source, Offset, Length) into a text log.
// Pieces are passed by value; a piece in a sequence is changed only by
// replacing the whole slot.
type Piece struct {
	Source Source
	Offset int64 // offset into the log
	Length int64 // length of the referenced text
}

// New returns a piece over [offset, offset+length) of src.
func New(src Source, offset, length int64) Piece {
	return Piece{Source: src, Offset: offset, Length: length}
}

// End returns the exclusive end offset of the piece within its log.
func (p Piece) End() int64 {
	return p.Offset + p.Length
}

// IsEmpty reports whether the piece covers no text.
func (p Piece) IsEmpty() bool {
	return p.Length == 0
}

// String renders the piece as Source(offset,length).
func (p Piece) String() string {
	return fmt.Sprintf("%s(%d,%d)", p.Source, p.Offset, p.Length)
}
