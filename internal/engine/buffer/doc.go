// Package buffer implements a piece table: an editable document stored as a
// sequence of references into two append-only text logs, with branching
// undo and hot-path redo.
//
// # Representation
//
// The original log holds the text the buffer was created with and is never
// modified. The addition log receives every inserted string, appended
// verbatim. The document is the concatenation of the pieces in the piece
// sequence, each naming a span of one log:
//
//	original: "HelloWorld!"     addition: ", "
//	pieces:   Original(0,5) Addition(0,2) Original(5,6)
//	text:     "Hello, World!"
//
// Edits only touch the pieces around the edit point, so an insert or remove
// costs O(pieces) regardless of document length. Because the logs never
// shrink or move, a piece recorded in history stays valid forever.
//
// # Edits
//
// Insert splits at most one piece. Remove classifies every piece overlapping
// the removal window as losing its tail, its head, its middle, or all of it,
// and applies those operations from the highest index down so earlier
// indices stay valid. Every edit is recorded as a history.Commit.
//
// # Undo and Redo
//
// Undo replays the head commit backwards; HotRedo replays the hot child's
// commit forwards. See package history for how branches are resolved.
//
// # Errors
//
// Invalid arguments are rejected without touching any state and are
// reported with the sentinel errors ErrOffsetOutOfRange, ErrEmptyInput,
// ErrRangeInvalid and ErrSplitsCharacter. An inconsistent history or a
// replayed piece outside its log is a bug, not an input error, and panics
// with a *history.CorruptionError.
//
// # Offsets
//
// Offsets are byte positions. By default the buffer never looks at content;
// WithBoundary(BoundaryRunes) or WithBoundary(BoundaryGraphemes) makes it
// reject offsets that would split a UTF-8 sequence or a grapheme cluster.
//
// A Buffer is not safe for concurrent use. Snapshot returns an immutable
// view that is.
package buffer
