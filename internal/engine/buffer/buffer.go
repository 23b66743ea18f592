package buffer

import (
	"io"
	"slices"

	"github.com/dshills/piecetable/internal/engine/history"
	"github.com/dshills/piecetable/internal/engine/piece"
	"github.com/dshills/piecetable/internal/logging"
)

// ByteOffset is a byte position in the document.
type ByteOffset = int64

// Buffer is a piece table with branching undo history.
type Buffer struct {
	original []byte // fixed at construction
	addition []byte // append-only
	pieces   []piece.Piece
	length   ByteOffset

	history *history.History

	boundary BoundaryMode
	logger   *logging.Logger
}

// New creates a buffer whose document is text. The text is copied into the
// original log; an empty text produces an empty piece sequence.
func New(text string, opts ...Option) *Buffer {
	b := &Buffer{
		original: []byte(text),
		length:   ByteOffset(len(text)),
		history:  history.New(),
		logger:   logging.NullLogger,
	}
	if len(text) > 0 {
		b.pieces = []piece.Piece{piece.New(piece.Original, 0, int64(len(text)))}
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Len returns the length of the document in bytes.
func (b *Buffer) Len() ByteOffset {
	return b.length
}

// IsEmpty returns true if the document is empty.
func (b *Buffer) IsEmpty() bool {
	return b.length == 0
}

// Boundary returns the offset validation mode.
func (b *Buffer) Boundary() BoundaryMode {
	return b.boundary
}

// Pieces returns a copy of the piece sequence in document order.
func (b *Buffer) Pieces() []piece.Piece {
	return slices.Clone(b.pieces)
}

// PieceCount returns the number of pieces in the sequence.
func (b *Buffer) PieceCount() int {
	return len(b.pieces)
}

// AdditionLen returns the size of the addition log.
func (b *Buffer) AdditionLen() int64 {
	return int64(len(b.addition))
}

// String returns the full document text.
func (b *Buffer) String() string {
	if b.length == 0 {
		return ""
	}
	return b.slice(0, b.length)
}

// WriteTo writes the document to w piece by piece.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, p := range b.pieces {
		n, err := w.Write(b.log(p.Source)[p.Offset:p.End()])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// CanUndo returns true if there is an edit to undo.
func (b *Buffer) CanUndo() bool {
	return b.history.CanUndo()
}

// CanRedo returns true if there is an undone edit on the hot path.
func (b *Buffer) CanRedo() bool {
	return b.history.CanRedo()
}

// HistoryHead returns the index of the current history entry.
func (b *Buffer) HistoryHead() int {
	return b.history.Head()
}

// HistoryEntries returns a copy of the history arena.
func (b *Buffer) HistoryEntries() []history.Entry {
	return b.history.Entries()
}

// HistoryLen returns the number of history entries, including the root.
func (b *Buffer) HistoryLen() int {
	return b.history.Len()
}

// HistoryEntry returns a copy of the history entry at idx.
func (b *Buffer) HistoryEntry(idx int) (history.Entry, bool) {
	return b.history.Entry(idx)
}

// HistoryDepth returns the number of edits between the initial state and
// the current state.
func (b *Buffer) HistoryDepth() int {
	return b.history.Depth()
}

// log returns the text log a source refers to.
func (b *Buffer) log(src piece.Source) []byte {
	if src == piece.Original {
		return b.original
	}
	return b.addition
}

// locate returns the index of the piece containing pos and pos relative to
// that piece. pos must be in [0, length).
func (b *Buffer) locate(pos ByteOffset) (int, ByteOffset) {
	var acc ByteOffset
	for i, p := range b.pieces {
		if acc+p.Length <= pos {
			acc += p.Length
			continue
		}
		return i, pos - acc
	}
	return len(b.pieces), 0
}

// byteAt returns the byte at pos, which must be in [0, length).
func (b *Buffer) byteAt(pos ByteOffset) byte {
	idx, local := b.locate(pos)
	p := b.pieces[idx]
	return b.log(p.Source)[p.Offset+local]
}
