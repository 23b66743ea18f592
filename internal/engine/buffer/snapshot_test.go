package buffer

import (
	"strings"
	"testing"
)

func TestSnapshotIsStable(t *testing.T) {
	b := New("HelloWorld!")
	mustInsert(t, b, 5, ", ")

	snap := b.Snapshot()
	mustRemove(t, b, 0, 7)
	mustInsert(t, b, 0, "Goodbye ")
	b.Undo()
	mustInsert(t, b, 0, strings.Repeat("x", 4096)) // force the addition log to grow

	if snap.String() != "Hello, World!" {
		t.Errorf("snapshot changed: %q", snap.String())
	}
	if snap.Len() != 13 {
		t.Errorf("expected snapshot length 13, got %d", snap.Len())
	}
	if len(snap.Pieces()) != 3 {
		t.Errorf("expected 3 pieces, got %d", len(snap.Pieces()))
	}

	var sb strings.Builder
	if _, err := snap.WriteTo(&sb); err != nil || sb.String() != "Hello, World!" {
		t.Errorf("WriteTo = %q, %v", sb.String(), err)
	}
}

func TestSnapshotOfEmptyBuffer(t *testing.T) {
	snap := New("").Snapshot()
	if snap.String() != "" || snap.Len() != 0 {
		t.Errorf("expected empty snapshot, got %q", snap.String())
	}
}
