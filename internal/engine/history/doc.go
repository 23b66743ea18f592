// Package history records the edits applied to a piece table as a branching
// tree, providing undo and "hot path" redo.
//
// # Changes and Commits
//
// A Change records a single mutation of the piece sequence: the index it
// happened at, the piece involved, and whether that piece was inserted or
// deleted. A Commit is the ordered list of Changes making up one logical
// edit. Changes are stored in apply order; any Deletion of a slot is
// recorded before the Insertion that reuses the same index, so replaying a
// commit forwards (redo) or backwards (undo) keeps every index valid.
//
// # The History Tree
//
// History is an arena of entries addressed by index. Entry 0 is the root and
// holds an empty commit for the initial state. Every Save appends a new leaf
// below the current head and moves the head to it:
//
//	h := history.New()
//	h.Save(c1)          // root -> 1
//	h.Undo()            // head back at root, root.hot = 1
//	h.Save(c2)          // root -> 1, root -> 2 (a branch)
//
// Nothing is ever removed, so indices stay valid for the life of the
// History and entries can refer to each other by plain integers.
//
// # Hot Path Redo
//
// With more than one child, "redo" is ambiguous. Undo remembers the child it
// just left as the parent's hot child, and HotRedo always follows that link,
// resuming the most recently abandoned future.
//
// # Corruption
//
// Structural inconsistencies (head out of bounds, a hot child that is not a
// child) indicate a bug in the bookkeeping rather than bad input. They are
// reported by panicking with a *CorruptionError.
package history
