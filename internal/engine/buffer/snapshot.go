package buffer

import (
	"io"
	"slices"

	"github.com/dshills/piecetable/internal/engine/piece"
)

// Snapshot is a read-only view of a buffer at a point in time.
//
// Taking a snapshot copies only the piece sequence. The logs are shared
// with the buffer, which is safe because the buffer never rewrites text it
// has already logged. A Snapshot may be read from any goroutine.
type Snapshot struct {
	original []byte
	addition []byte
	pieces   []piece.Piece
	length   ByteOffset
}

// Snapshot captures the current document.
func (b *Buffer) Snapshot() *Snapshot {
	n := len(b.addition)
	return &Snapshot{
		original: b.original,
		addition: b.addition[:n:n],
		pieces:   slices.Clone(b.pieces),
		length:   b.length,
	}
}

// Len returns the length of the snapshot in bytes.
func (s *Snapshot) Len() ByteOffset {
	return s.length
}

// Pieces returns a copy of the snapshot's piece sequence.
func (s *Snapshot) Pieces() []piece.Piece {
	return slices.Clone(s.pieces)
}

// String returns the full text of the snapshot.
func (s *Snapshot) String() string {
	buf := make([]byte, 0, s.length)
	for _, p := range s.pieces {
		buf = append(buf, s.log(p.Source)[p.Offset:p.End()]...)
	}
	return string(buf)
}

// WriteTo writes the snapshot text to w.
func (s *Snapshot) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, p := range s.pieces {
		n, err := w.Write(s.log(p.Source)[p.Offset:p.End()])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (s *Snapshot) log(src piece.Source) []byte {
	if src == piece.Original {
		return s.original
	}
	return s.addition
}
