package buffer

import (
	"fmt"
	"slices"

	"github.com/dshills/piecetable/internal/engine/history"
	"github.com/dshills/piecetable/internal/engine/piece"
	"github.com/dshills/piecetable/internal/logging"
)

// Insert inserts text at pos. The text is appended to the addition log and
// referenced by a new piece; at most one existing piece is split.
func (b *Buffer) Insert(pos ByteOffset, text string) error {
	if pos < 0 || pos > b.length {
		return fmt.Errorf("%w: insert at %d, length %d", ErrOffsetOutOfRange, pos, b.length)
	}
	if text == "" {
		return fmt.Errorf("%w: insert of empty text", ErrEmptyInput)
	}
	if err := b.checkBoundary(pos); err != nil {
		return err
	}

	added := piece.New(piece.Addition, int64(len(b.addition)), int64(len(text)))
	b.addition = append(b.addition, text...)

	var commit history.Commit
	switch {
	case pos == 0:
		b.pieces = slices.Insert(b.pieces, 0, added)
		commit.Add(0, added, history.Insertion)
	case pos == b.length:
		idx := len(b.pieces)
		b.pieces = append(b.pieces, added)
		commit.Add(idx, added, history.Insertion)
	default:
		idx, local := b.locate(pos)
		if local == 0 {
			b.pieces = slices.Insert(b.pieces, idx, added)
			commit.Add(idx, added, history.Insertion)
			break
		}

		// Split the containing piece around the new one.
		old := b.pieces[idx]
		lead := piece.New(old.Source, old.Offset, local)
		trail := piece.New(old.Source, old.Offset+local, old.Length-local)

		b.pieces[idx] = lead
		commit.Add(idx, old, history.Deletion)
		commit.Add(idx, lead, history.Insertion)

		b.pieces = slices.Insert(b.pieces, idx+1, added, trail)
		commit.Add(idx+1, added, history.Insertion)
		commit.Add(idx+2, trail, history.Insertion)
	}

	b.length += added.Length
	b.history.Save(commit)
	if b.logger.Enabled(logging.LevelDebug) {
		b.logger.Debug("insert %d bytes at %d: %s", added.Length, pos, commit.Changes)
	}
	return nil
}

// Append inserts text at the end of the document.
func (b *Buffer) Append(text string) error {
	return b.Insert(b.length, text)
}

// removeKind classifies how a piece overlaps a removal window.
type removeKind uint8

const (
	removeEnd   removeKind = iota // window covers the piece's tail
	removeFull                    // window covers the whole piece
	removeStart                   // window covers the piece's head
	removeSlice                   // window lies strictly inside the piece
)

type removal struct {
	kind removeKind
	idx  int
	// n is the number of bytes cut for removeEnd and removeStart, and the
	// offset of the window within the piece for removeSlice.
	n ByteOffset
}

// Remove deletes n bytes starting at pos.
func (b *Buffer) Remove(pos, n ByteOffset) error {
	if n == 0 {
		return fmt.Errorf("%w: removal of zero bytes", ErrEmptyInput)
	}
	if pos < 0 || n < 0 || pos > b.length-n {
		return fmt.Errorf("%w: remove [%d,%d), length %d", ErrOffsetOutOfRange, pos, pos+n, b.length)
	}
	end := pos + n
	if err := b.checkBoundary(pos, end); err != nil {
		return err
	}

	var ops []removal
	var acc ByteOffset
	for idx, p := range b.pieces {
		if acc >= end {
			break
		}
		start := acc
		acc += p.Length

		coversHead := pos <= start
		coversTail := end >= acc && acc > pos

		switch {
		case !coversHead && coversTail:
			ops = append(ops, removal{kind: removeEnd, idx: idx, n: acc - pos})
		case coversHead && coversTail:
			ops = append(ops, removal{kind: removeFull, idx: idx})
		case coversHead && !coversTail:
			ops = append(ops, removal{kind: removeStart, idx: idx, n: end - start})
		case start < pos && end < acc:
			ops = append(ops, removal{kind: removeSlice, idx: idx, n: pos - start})
		}
	}

	var commit history.Commit
	b.length -= n
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		old := b.pieces[op.idx]

		switch op.kind {
		case removeEnd:
			shrunk := piece.New(old.Source, old.Offset, old.Length-op.n)
			b.pieces[op.idx] = shrunk
			commit.Add(op.idx, old, history.Deletion)
			commit.Add(op.idx, shrunk, history.Insertion)
		case removeFull:
			b.pieces = slices.Delete(b.pieces, op.idx, op.idx+1)
			commit.Add(op.idx, old, history.Deletion)
		case removeStart:
			shrunk := piece.New(old.Source, old.Offset+op.n, old.Length-op.n)
			b.pieces[op.idx] = shrunk
			commit.Add(op.idx, old, history.Deletion)
			commit.Add(op.idx, shrunk, history.Insertion)
		case removeSlice:
			lead := piece.New(old.Source, old.Offset, op.n)
			trail := piece.New(old.Source, old.Offset+op.n+n, old.Length-op.n-n)
			b.pieces[op.idx] = lead
			commit.Add(op.idx, old, history.Deletion)
			commit.Add(op.idx, lead, history.Insertion)

			b.pieces = slices.Insert(b.pieces, op.idx+1, trail)
			commit.Add(op.idx+1, trail, history.Insertion)
		}
	}

	b.history.Save(commit)
	if b.logger.Enabled(logging.LevelDebug) {
		b.logger.Debug("remove %d bytes at %d: %s", n, pos, commit.Changes)
	}
	return nil
}
