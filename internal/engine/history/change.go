package history

import (
	"fmt"

	"github.com/dshills/piecetable/internal/engine/piece"
)

// ChangeKind says what happened to a piece at a position.
type ChangeKind uint8

const (
	Insertion ChangeKind = iota // piece was added at Pos
	Deletion                    // piece was removed from Pos
)

// String returns the name of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case Insertion:
		return "Insertion"
	case Deletion:
		return "Deletion"
	default:
		return fmt.Sprintf("ChangeKind(%d)", uint8(k))
	}
}

// Change is one mutation of the piece sequence.
type Change struct {
	// Pos is the index into the piece sequence at the moment of the edit.
	Pos   int
	Piece piece.Piece
	Kind  ChangeKind
}

// NewChange creates a change.
func NewChange(pos int, p piece.Piece, kind ChangeKind) Change {
	return Change{Pos: pos, Piece: p, Kind: kind}
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	return fmt.Sprintf("%s %s @%d", c.Kind, c.Piece, c.Pos)
}

// Commit is the ordered list of changes making up one logical edit.
// The zero value is an empty commit.
type Commit struct {
	Changes []Change
}

// Add appends a change to the commit.
func (c *Commit) Add(pos int, p piece.Piece, kind ChangeKind) {
	c.Changes = append(c.Changes, NewChange(pos, p, kind))
}

// Len returns the number of changes.
func (c Commit) Len() int {
	return len(c.Changes)
}

// IsEmpty returns true if the commit holds no changes.
func (c Commit) IsEmpty() bool {
	return len(c.Changes) == 0
}

// Delta returns the net change in document length the commit applies when
// replayed forwards.
func (c Commit) Delta() int64 {
	var d int64
	for _, ch := range c.Changes {
		switch ch.Kind {
		case Insertion:
			d += ch.Piece.Length
		case Deletion:
			d -= ch.Piece.Length
		}
	}
	return d
}

// Clone returns a deep copy of the commit.
func (c Commit) Clone() Commit {
	if c.Changes == nil {
		return Commit{}
	}
	changes := make([]Change, len(c.Changes))
	copy(changes, c.Changes)
	return Commit{Changes: changes}
}
