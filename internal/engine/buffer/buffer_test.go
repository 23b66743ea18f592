package buffer

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dshills/piecetable/internal/engine/history"
	"github.com/dshills/piecetable/internal/engine/piece"
)

func orig(offset, length int64) piece.Piece { return piece.New(piece.Original, offset, length) }
func add(offset, length int64) piece.Piece  { return piece.New(piece.Addition, offset, length) }

func mustInsert(t *testing.T, b *Buffer, pos ByteOffset, text string) {
	t.Helper()
	if err := b.Insert(pos, text); err != nil {
		t.Fatalf("insert(%d, %q) failed: %v", pos, text, err)
	}
}

func mustRemove(t *testing.T, b *Buffer, pos, n ByteOffset) {
	t.Helper()
	if err := b.Remove(pos, n); err != nil {
		t.Fatalf("remove(%d, %d) failed: %v", pos, n, err)
	}
}

func checkText(t *testing.T, b *Buffer, want string) {
	t.Helper()
	if got := b.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if b.Len() != ByteOffset(len(want)) {
		t.Errorf("expected length %d, got %d", len(want), b.Len())
	}
	var sum int64
	for _, p := range b.Pieces() {
		sum += p.Length
	}
	if sum != b.Len() {
		t.Errorf("piece lengths sum to %d, length is %d", sum, b.Len())
	}
}

func checkPieces(t *testing.T, b *Buffer, want []piece.Piece) {
	t.Helper()
	if diff := cmp.Diff(want, b.Pieces(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("pieces mismatch (-want +got):\n%s", diff)
	}
}

// Construction

func TestNew(t *testing.T) {
	b := New("Hello, World!")
	checkText(t, b, "Hello, World!")
	checkPieces(t, b, []piece.Piece{orig(0, 13)})

	if b.CanUndo() || b.CanRedo() {
		t.Error("new buffer should have no history to walk")
	}
	if b.HistoryHead() != 0 || len(b.HistoryEntries()) != 1 {
		t.Error("new buffer should have only the root history entry")
	}
}

func TestNewEmpty(t *testing.T) {
	b := New("")
	checkText(t, b, "")
	checkPieces(t, b, nil)
	if !b.IsEmpty() {
		t.Error("buffer should be empty")
	}
}

// Insert

func TestInsertSplitsPiece(t *testing.T) {
	b := New("HelloWorld!")
	mustInsert(t, b, 5, ", ")

	checkText(t, b, "Hello, World!")
	checkPieces(t, b, []piece.Piece{orig(0, 5), add(0, 2), orig(5, 6)})

	entries := b.HistoryEntries()
	want := history.Commit{Changes: []history.Change{
		{Pos: 0, Piece: orig(0, 11), Kind: history.Deletion},
		{Pos: 0, Piece: orig(0, 5), Kind: history.Insertion},
		{Pos: 1, Piece: add(0, 2), Kind: history.Insertion},
		{Pos: 2, Piece: orig(5, 6), Kind: history.Insertion},
	}}
	if diff := cmp.Diff(want, entries[1].Commit); diff != "" {
		t.Errorf("commit mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertAtBoundaries(t *testing.T) {
	b := New("World")
	mustInsert(t, b, 0, "Hello ")
	mustInsert(t, b, b.Len(), "!")

	checkText(t, b, "Hello World!")
	checkPieces(t, b, []piece.Piece{add(0, 6), orig(0, 5), add(6, 1)})
}

func TestInsertAtPieceBoundary(t *testing.T) {
	b := New("HelloWorld")
	mustInsert(t, b, 5, " ")
	mustInsert(t, b, 6, "big ")

	checkText(t, b, "Hello big World")
	checkPieces(t, b, []piece.Piece{orig(0, 5), add(0, 1), add(1, 4), orig(5, 5)})

	entries := b.HistoryEntries()
	last := entries[len(entries)-1].Commit
	if last.Len() != 1 || last.Changes[0].Kind != history.Insertion || last.Changes[0].Pos != 2 {
		t.Errorf("expected a single insertion at index 2, got %v", last.Changes)
	}
}

func TestAppendToEmpty(t *testing.T) {
	b := New("")
	if err := b.Append("Hello, World!"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	checkText(t, b, "Hello, World!")

	entries := b.HistoryEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(entries))
	}
	if diff := cmp.Diff([]int{1}, entries[0].Children); diff != "" {
		t.Errorf("root children mismatch (-want +got):\n%s", diff)
	}
	want := history.Commit{Changes: []history.Change{
		{Pos: 0, Piece: add(0, 13), Kind: history.Insertion},
	}}
	if diff := cmp.Diff(want, entries[1].Commit); diff != "" {
		t.Errorf("commit mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendBuildsText(t *testing.T) {
	b := New("Hello, ")
	if err := b.Append("World!"); err != nil {
		t.Fatal(err)
	}
	checkText(t, b, "Hello, World!")
}

func TestInsertReconstructs(t *testing.T) {
	b := New("Held!")
	mustInsert(t, b, 2, "llor")
	checkText(t, b, "Hellorld!")
	mustInsert(t, b, 4, "o, W")
	checkText(t, b, "Hello, World!")
}

// Remove

func TestRemove(t *testing.T) {
	tests := []struct {
		name   string
		pos, n ByteOffset
		want   string
		pieces []piece.Piece
	}{
		{"tail", 5, 8, "Hello", []piece.Piece{orig(0, 5)}},
		{"head", 0, 7, "World!", []piece.Piece{orig(7, 6)}},
		{"all", 0, 13, "", nil},
		{"middle", 5, 2, "HelloWorld!", []piece.Piece{orig(0, 5), orig(7, 6)}},
		{"single byte", 12, 1, "Hello, World", []piece.Piece{orig(0, 12)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("Hello, World!")
			mustRemove(t, b, tt.pos, tt.n)
			checkText(t, b, tt.want)
			checkPieces(t, b, tt.pieces)
		})
	}
}

func TestRemoveAcrossPieces(t *testing.T) {
	// pieces: Original(0,5) Addition(0,2) Original(5,6)
	tests := []struct {
		name   string
		pos, n ByteOffset
		want   string
		pieces []piece.Piece
	}{
		{"end and full", 3, 4, "HelWorld!", []piece.Piece{orig(0, 3), orig(5, 6)}},
		{"full and start", 5, 4, "Hellorld!", []piece.Piece{orig(0, 5), orig(7, 4)}},
		{"end full start", 4, 5, "Hellrld!", []piece.Piece{orig(0, 4), orig(7, 4)}},
		{"exact piece", 5, 2, "HelloWorld!", []piece.Piece{orig(0, 5), orig(5, 6)}},
		{"tail of addition", 6, 1, "Hello,World!", []piece.Piece{orig(0, 5), add(0, 1), orig(5, 6)}},
		{"slice inside trailing", 8, 2, "Hello, Wld!", []piece.Piece{orig(0, 5), add(0, 2), orig(5, 1), orig(8, 3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("HelloWorld!")
			mustInsert(t, b, 5, ", ")
			mustRemove(t, b, tt.pos, tt.n)
			checkText(t, b, tt.want)
			checkPieces(t, b, tt.pieces)
		})
	}
}

func TestRemoveSliceUsesLogOffset(t *testing.T) {
	b := New("0123456789")
	mustRemove(t, b, 0, 2) // Original(2,8)
	mustRemove(t, b, 3, 2) // slice inside a piece not starting at log offset 0

	checkText(t, b, "234789")
	checkPieces(t, b, []piece.Piece{orig(2, 3), orig(7, 3)})

	b.Undo()
	checkText(t, b, "23456789")
	b.HotRedo()
	checkText(t, b, "234789")
}

func TestRemoveRecordsReverseOrder(t *testing.T) {
	b := New("HelloWorld!")
	mustInsert(t, b, 5, ", ")
	mustRemove(t, b, 4, 5)

	entries := b.HistoryEntries()
	want := history.Commit{Changes: []history.Change{
		{Pos: 2, Piece: orig(5, 6), Kind: history.Deletion},
		{Pos: 2, Piece: orig(7, 4), Kind: history.Insertion},
		{Pos: 1, Piece: add(0, 2), Kind: history.Deletion},
		{Pos: 0, Piece: orig(0, 5), Kind: history.Deletion},
		{Pos: 0, Piece: orig(0, 4), Kind: history.Insertion},
	}}
	if diff := cmp.Diff(want, entries[len(entries)-1].Commit); diff != "" {
		t.Errorf("commit mismatch (-want +got):\n%s", diff)
	}
}

// Errors

func TestEditErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func(b *Buffer) error
		want error
	}{
		{"insert past end", func(b *Buffer) error { return b.Insert(b.Len()+1, "x") }, ErrOffsetOutOfRange},
		{"insert negative", func(b *Buffer) error { return b.Insert(-1, "x") }, ErrOffsetOutOfRange},
		{"insert empty", func(b *Buffer) error { return b.Insert(0, "") }, ErrEmptyInput},
		{"append empty", func(b *Buffer) error { return b.Append("") }, ErrEmptyInput},
		{"remove zero", func(b *Buffer) error { return b.Remove(2, 0) }, ErrEmptyInput},
		{"remove past end", func(b *Buffer) error { return b.Remove(3, 3) }, ErrOffsetOutOfRange},
		{"remove negative", func(b *Buffer) error { return b.Remove(-1, 2) }, ErrOffsetOutOfRange},
		{"remove overflow", func(b *Buffer) error { return b.Remove(1, math.MaxInt64) }, ErrOffsetOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("Hello")
			before := b.Pieces()

			err := tt.fn(b)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}

			checkText(t, b, "Hello")
			checkPieces(t, b, before)
			if b.AdditionLen() != 0 {
				t.Error("failed edit grew the addition log")
			}
			if len(b.HistoryEntries()) != 1 {
				t.Error("failed edit was recorded in history")
			}
		})
	}
}

// Slice

func TestSlice(t *testing.T) {
	b := New("HelloWorld!")
	mustInsert(t, b, 5, ", ")
	text := b.String()

	for i := ByteOffset(0); i < b.Len(); i++ {
		for j := i + 1; j <= b.Len(); j++ {
			got, err := b.Slice(i, j)
			if err != nil {
				t.Fatalf("slice(%d, %d) failed: %v", i, j, err)
			}
			if got != text[i:j] {
				t.Errorf("slice(%d, %d) = %q, want %q", i, j, got, text[i:j])
			}
		}
	}
}

func TestSliceErrors(t *testing.T) {
	b := New("Hello, World!")

	tests := []struct {
		name string
		fn   func() (string, error)
		want error
	}{
		{"empty range", func() (string, error) { return b.Slice(3, 3) }, ErrRangeInvalid},
		{"reversed", func() (string, error) { return b.Slice(5, 2) }, ErrRangeInvalid},
		{"past end", func() (string, error) { return b.Slice(0, b.Len()+1) }, ErrOffsetOutOfRange},
		{"negative", func() (string, error) { return b.Slice(-1, 2) }, ErrOffsetOutOfRange},
		{"inclusive max", func() (string, error) { return b.SliceInclusive(0, math.MaxInt64) }, ErrOffsetOutOfRange},
		{"to inclusive max", func() (string, error) { return b.SliceToInclusive(math.MaxInt64) }, ErrOffsetOutOfRange},
		{"from end", func() (string, error) { return b.SliceFrom(b.Len()) }, ErrRangeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.fn(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSliceVariants(t *testing.T) {
	b := New("Hello")
	mustAppend := func(s string) {
		t.Helper()
		if err := b.Append(s); err != nil {
			t.Fatal(err)
		}
	}
	mustAppend(", World!")

	tests := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{"from", func() (string, error) { return b.SliceFrom(7) }, "World!"},
		{"to", func() (string, error) { return b.SliceTo(5) }, "Hello"},
		{"to inclusive", func() (string, error) { return b.SliceToInclusive(4) }, "Hello"},
		{"inclusive", func() (string, error) { return b.SliceInclusive(4, 7) }, "o, W"},
		{"all", func() (string, error) { return b.SliceAll() }, "Hello, World!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSliceAllEmpty(t *testing.T) {
	b := New("")
	if _, err := b.SliceAll(); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if b.String() != "" {
		t.Errorf("expected empty string, got %q", b.String())
	}
}

func TestWriteTo(t *testing.T) {
	b := New("HelloWorld!")
	mustInsert(t, b, 5, ", ")

	var buf bytes.Buffer
	n, err := b.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != b.Len() || buf.String() != "Hello, World!" {
		t.Errorf("WriteTo wrote %d bytes %q", n, buf.String())
	}
}

// Undo / Redo

func TestUndoInsertRestoresPieces(t *testing.T) {
	b := New("HelloWorld!")
	before := b.Pieces()

	mustInsert(t, b, 5, ", ")
	if !b.Undo() {
		t.Fatal("undo reported nothing to undo")
	}
	checkText(t, b, "HelloWorld!")
	checkPieces(t, b, before)
}

func TestUndoRemoveRestoresPieces(t *testing.T) {
	b := New("HelloWorld!")
	mustInsert(t, b, 5, ", ")
	before := b.Pieces()

	mustRemove(t, b, 4, 5)
	b.Undo()
	checkText(t, b, "Hello, World!")
	checkPieces(t, b, before)
}

func TestUndoAtRootIsNoop(t *testing.T) {
	b := New("Hello")
	if b.Undo() {
		t.Error("undo at root should report false")
	}
	checkText(t, b, "Hello")
}

func TestRedoWithoutUndoIsNoop(t *testing.T) {
	b := New("Hello")
	mustInsert(t, b, 5, "!")
	if b.HotRedo() {
		t.Error("redo without undo should report false")
	}
	checkText(t, b, "Hello!")
}

func TestUndoRedoSequence(t *testing.T) {
	b := New("Held!")
	mustInsert(t, b, 2, "llor")
	mustInsert(t, b, 4, "o, W")
	checkText(t, b, "Hello, World!")

	b.Undo()
	b.Undo()
	checkText(t, b, "Held!")

	b.HotRedo()
	b.HotRedo()
	checkText(t, b, "Hello, World!")
}

func TestUndoRedoAppends(t *testing.T) {
	b := New("Hello, World!")
	b.Append("World!")
	b.Append("World!")
	checkText(t, b, "Hello, World!World!World!")

	b.Undo()
	checkText(t, b, "Hello, World!World!")
	b.Undo()
	checkText(t, b, "Hello, World!")

	b.HotRedo()
	checkText(t, b, "Hello, World!World!")
	b.HotRedo()
	checkText(t, b, "Hello, World!World!World!")
}

func TestRedoFollowsLastUndoneBranch(t *testing.T) {
	b := New("Hello")
	b.Append("World!")
	mustInsert(t, b, 5, ", ")
	checkText(t, b, "Hello, World!")

	b.Undo()
	checkText(t, b, "HelloWorld!")
	b.HotRedo()
	checkText(t, b, "Hello, World!")

	// Fork: undo the comma and insert a space instead.
	b.Undo()
	mustInsert(t, b, 5, " ")
	checkText(t, b, "Hello World!")

	entries := b.HistoryEntries()
	if diff := cmp.Diff([]int{2, 3}, entries[1].Children); diff != "" {
		t.Errorf("branch children mismatch (-want +got):\n%s", diff)
	}

	b.Undo()
	checkText(t, b, "HelloWorld!")
	b.HotRedo()
	checkText(t, b, "Hello World!")

	b.Undo()
	b.Undo()
	checkText(t, b, "Hello")
	b.HotRedo()
	b.HotRedo()
	checkText(t, b, "Hello World!")
	if b.HistoryDepth() != 2 {
		t.Errorf("expected depth 2, got %d", b.HistoryDepth())
	}
}

func TestEditAfterUndoKeepsAdditionLog(t *testing.T) {
	b := New("abc")
	mustInsert(t, b, 1, "XYZ")
	b.Undo()
	mustInsert(t, b, 1, "Q")

	checkText(t, b, "aQbc")
	checkPieces(t, b, []piece.Piece{orig(0, 1), add(3, 1), orig(1, 2)})
	if b.AdditionLen() != 4 {
		t.Errorf("addition log should only grow, got length %d", b.AdditionLen())
	}
}

// Corruption

func expectCorruption(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		var ce *history.CorruptionError
		if err, ok := r.(error); !ok || !errors.As(err, &ce) {
			t.Fatalf("expected CorruptionError, got %v", r)
		}
	}()
	fn()
}

func TestRedoWithTruncatedLogPanics(t *testing.T) {
	b := New("Hello")
	mustInsert(t, b, 5, " World")
	b.Undo()

	b.addition = b.addition[:2]
	expectCorruption(t, func() { b.HotRedo() })
}

func TestUndoWithForeignPiecePanics(t *testing.T) {
	b := New("Hello")
	mustInsert(t, b, 5, "!")

	b.pieces[1] = orig(0, 1)
	expectCorruption(t, func() { b.Undo() })
}

func TestUndoWithMissingPiecePanics(t *testing.T) {
	b := New("Hello")
	mustInsert(t, b, 5, "!")

	b.pieces = b.pieces[:1]
	expectCorruption(t, func() { b.Undo() })
}

func TestUndoEmptyCommitPanics(t *testing.T) {
	b := New("Hello")
	b.history.Save(history.Commit{})
	expectCorruption(t, func() { b.Undo() })
}

func TestRedoEmptyPiecePanics(t *testing.T) {
	b := New("Hello")
	var commit history.Commit
	commit.Add(1, add(0, 0), history.Insertion)
	b.history.Save(commit)
	b.history.Undo()
	expectCorruption(t, func() { b.HotRedo() })
}

func TestHistoryEntry(t *testing.T) {
	b := New("Hello")
	mustInsert(t, b, 2, "XY")

	entry, ok := b.HistoryEntry(1)
	if !ok {
		t.Fatal("entry 1 not found")
	}
	if entry.Parent != 0 || entry.Commit.Len() != 4 {
		t.Errorf("unexpected entry: parent=%d changes=%d", entry.Parent, entry.Commit.Len())
	}
	if b.PieceCount() != 3 {
		t.Errorf("expected 3 pieces, got %d", b.PieceCount())
	}
	if _, ok := b.HistoryEntry(2); ok {
		t.Error("entry 2 should not exist")
	}
}

// Boundaries

func TestBoundaryRunes(t *testing.T) {
	b := New("h\u00e9llo", WithBoundary(BoundaryRunes)) // U+00E9 occupies bytes 1..2

	if err := b.Insert(2, "x"); !errors.Is(err, ErrSplitsCharacter) {
		t.Errorf("expected ErrSplitsCharacter, got %v", err)
	}
	if err := b.Remove(0, 2); !errors.Is(err, ErrSplitsCharacter) {
		t.Errorf("expected ErrSplitsCharacter, got %v", err)
	}
	if _, err := b.Slice(2, 4); !errors.Is(err, ErrSplitsCharacter) {
		t.Errorf("expected ErrSplitsCharacter, got %v", err)
	}

	mustInsert(t, b, 3, "ll")
	checkText(t, b, "h\u00e9llllo")
	if len(b.HistoryEntries()) != 2 {
		t.Error("rejected edits were recorded")
	}
}

func TestBoundaryGraphemes(t *testing.T) {
	text := "e\u0301x" // e + combining acute accent, then x

	runes := New(text, WithBoundary(BoundaryRunes))
	if err := runes.Insert(1, "!"); err != nil {
		t.Errorf("rune mode should accept offset between code points: %v", err)
	}

	graphemes := New(text, WithBoundary(BoundaryGraphemes))
	if err := graphemes.Insert(1, "!"); !errors.Is(err, ErrSplitsCharacter) {
		t.Errorf("expected ErrSplitsCharacter, got %v", err)
	}
	mustInsert(t, graphemes, 3, "!")
	checkText(t, graphemes, "e\u0301!x")
}

func TestBoundaryBytesIgnoresContent(t *testing.T) {
	b := New("h\u00e9llo")
	mustInsert(t, b, 2, "x")
	if !strings.Contains(b.String(), "x") {
		t.Error("byte mode should accept any offset")
	}
}

func TestParseBoundaryMode(t *testing.T) {
	tests := []struct {
		input string
		want  BoundaryMode
		name  string
	}{
		{"", BoundaryBytes, "bytes"},
		{"bytes", BoundaryBytes, "bytes"},
		{"Runes", BoundaryRunes, "runes"},
		{"grapheme", BoundaryGraphemes, "graphemes"},
	}
	for _, tt := range tests {
		got, err := ParseBoundaryMode(tt.input)
		if err != nil || got != tt.want {
			t.Errorf("ParseBoundaryMode(%q) = %v, %v", tt.input, got, err)
		}
		if got.String() != tt.name {
			t.Errorf("String() = %q, want %q", got.String(), tt.name)
		}
	}
	if _, err := ParseBoundaryMode("words"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
