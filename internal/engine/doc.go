// Package engine provides the piece-table text engine behind a single
// thread-safe facade.
//
// The engine package combines the piece-table buffer, its branching undo
// history and named snapshots into one API. It is the owner that provides
// mutual exclusion for the buffer: the buffer itself assumes a single
// caller.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - piece: references into the original and addition logs
//   - buffer: the piece table, edits, slicing and undo/redo replay
//   - history: the branching commit history with hot-path redo
//   - tracking: named snapshots and text diffs
//
// # Thread Safety
//
// All Engine operations are thread-safe. The engine uses a read-write mutex
// to allow concurrent reads while serializing writes.
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("Hello, World!"))
//
//	if err := e.Insert(5, ","); err != nil {
//		// errors.Is(err, engine.ErrOffsetOutOfRange) ...
//	}
//	e.Remove(5, 1)
//
//	e.Undo()    // back to "Hello, World!,"
//	e.HotRedo() // forward along the branch most recently undone
//
// # Snapshots
//
// Snapshots capture the document cheaply and can be diffed against the
// live text later:
//
//	id := e.CreateSnapshot("before")
//	e.Append(" Bye.")
//	diff, _ := e.DiffSinceSnapshot(id)
//	fmt.Println(diff.Pretty())
//
// # Undo and Redo
//
// Undo walks from the current history entry to its parent. Redo follows
// the hot path: the child most recently undone from, or the newest edit.
// Editing after an undo starts a new branch without discarding the old one.
package engine
