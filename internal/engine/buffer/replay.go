package buffer

import (
	"fmt"
	"slices"

	"github.com/dshills/piecetable/internal/engine/history"
)

// Undo reverts the most recent edit on the path to the current state.
// It returns false if the buffer is at its initial state.
func (b *Buffer) Undo() bool {
	commit, ok := b.history.Undo()
	if !ok {
		return false
	}
	b.validate("undo", commit)

	for i := len(commit.Changes) - 1; i >= 0; i-- {
		ch := commit.Changes[i]
		switch ch.Kind {
		case history.Deletion:
			// The piece was removed; put it back.
			b.insertPiece("undo", ch)
		case history.Insertion:
			// The piece was added; take it out.
			b.removePiece("undo", ch)
		}
	}

	b.logger.Debug("undo %d changes (%+d bytes), head %d", commit.Len(), -commit.Delta(), b.history.Head())
	return true
}

// HotRedo reapplies the edit most recently left by Undo from the current
// state. It returns false if there is no such edit.
func (b *Buffer) HotRedo() bool {
	commit, ok := b.history.HotRedo()
	if !ok {
		return false
	}
	b.validate("redo", commit)

	for _, ch := range commit.Changes {
		switch ch.Kind {
		case history.Deletion:
			b.removePiece("redo", ch)
		case history.Insertion:
			b.insertPiece("redo", ch)
		}
	}

	b.logger.Debug("redo %d changes (%+d bytes), head %d", commit.Len(), commit.Delta(), b.history.Head())
	return true
}

// validate checks that commit is non-empty and that every piece in it is
// non-empty and lies within its log.
func (b *Buffer) validate(op string, commit history.Commit) {
	if commit.IsEmpty() {
		b.fail(op, "commit has no changes")
	}
	for _, ch := range commit.Changes {
		p := ch.Piece
		if p.IsEmpty() {
			b.fail(op, "change %s references an empty piece", ch)
		}
		logLen := int64(len(b.log(p.Source)))
		if p.Offset < 0 || p.Length < 0 || p.End() > logLen {
			b.fail(op, "piece %s is outside the %s log of length %d", p, p.Source, logLen)
		}
	}
}

func (b *Buffer) insertPiece(op string, ch history.Change) {
	if ch.Pos < 0 || ch.Pos > len(b.pieces) {
		b.fail(op, "insert position %d is outside %d pieces", ch.Pos, len(b.pieces))
	}
	b.pieces = slices.Insert(b.pieces, ch.Pos, ch.Piece)
	b.length += ch.Piece.Length
}

func (b *Buffer) removePiece(op string, ch history.Change) {
	if ch.Pos < 0 || ch.Pos >= len(b.pieces) {
		b.fail(op, "remove position %d is outside %d pieces", ch.Pos, len(b.pieces))
	}
	if got := b.pieces[ch.Pos]; got != ch.Piece {
		b.fail(op, "piece at %d is %s, expected %s", ch.Pos, got, ch.Piece)
	}
	b.pieces = slices.Delete(b.pieces, ch.Pos, ch.Pos+1)
	b.length -= ch.Piece.Length
}

// fail logs and panics with a CorruptionError.
func (b *Buffer) fail(op, format string, args ...any) {
	err := &history.CorruptionError{Op: op, Reason: fmt.Sprintf(format, args...)}
	b.logger.Error("%v", err)
	panic(err)
}
