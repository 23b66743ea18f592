// Package tracking keeps named snapshots of a document and computes text
// diffs between them and the live document.
//
// Snapshots hold an immutable view of the text (for a piece table, a copy
// of the piece sequence over the shared append-only logs), so creating one
// is cheap and reading one never races with later edits.
//
//	sm := tracking.NewSnapshotManager()
//	id := sm.Create("before_refactor", buf.Snapshot(), rev)
//	// ... edits ...
//	snap, _ := sm.Get(id)
//	result := tracking.Diff(snap.Text(), buf.String())
package tracking
