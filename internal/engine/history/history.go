package history

import (
	"slices"
	"time"
)

// NoEntry marks an absent parent or hot child.
const NoEntry = -1

// Entry is a node of the history tree.
type Entry struct {
	// Parent is the index of the entry this one was saved on top of,
	// or NoEntry for the root.
	Parent int
	// Children lists the entries saved on top of this one, oldest first.
	Children []int
	// HotChild is the child last left via Undo, or NoEntry.
	HotChild int
	// Commit transitions the parent's state into this entry's state.
	Commit Commit
	// Timestamp records when the entry was saved.
	Timestamp time.Time
}

func newEntry(parent int, commit Commit) Entry {
	return Entry{
		Parent:    parent,
		HotChild:  NoEntry,
		Commit:    commit,
		Timestamp: time.Now(),
	}
}

// clone returns a copy that shares no slices with e.
func (e Entry) clone() Entry {
	e.Children = slices.Clone(e.Children)
	e.Commit = e.Commit.Clone()
	return e
}

// History is an append-only arena of entries plus a head index.
//
// History is not safe for concurrent use; the owning buffer serializes
// access.
type History struct {
	entries []Entry
	head    int
}

// New creates a history holding only the root entry.
func New() *History {
	return &History{
		entries: []Entry{newEntry(NoEntry, Commit{})},
		head:    0,
	}
}

// check panics if the arena is empty or the head is outside it.
func (h *History) check(op string) {
	if len(h.entries) == 0 {
		corrupt(op, "history is empty")
	}
	if h.head < 0 || h.head >= len(h.entries) {
		corrupt(op, "head %d is out of bounds [0,%d)", h.head, len(h.entries))
	}
}

// Save appends commit as a new child of the head and moves the head to it.
// It returns the index of the new entry.
func (h *History) Save(commit Commit) int {
	h.check("save")

	prev := h.head
	idx := len(h.entries)
	h.entries[prev].Children = append(h.entries[prev].Children, idx)
	h.entries = append(h.entries, newEntry(prev, commit))
	h.head = idx
	return idx
}

// Undo moves the head to its parent, marks the entry just left as the
// parent's hot child, and returns the commit that produced the state being
// undone. At the root it does nothing and returns false.
func (h *History) Undo() (Commit, bool) {
	h.check("undo")

	left := h.head
	parent := h.entries[left].Parent
	if parent == NoEntry {
		return Commit{}, false
	}
	if parent < 0 || parent >= len(h.entries) {
		corrupt("undo", "parent %d of entry %d is out of bounds", parent, left)
	}

	h.head = parent
	h.entries[parent].HotChild = left
	return h.entries[left].Commit.Clone(), true
}

// HotRedo moves the head to its hot child and returns that entry's commit.
// It returns false if the head has no hot child.
func (h *History) HotRedo() (Commit, bool) {
	h.check("redo")

	hot := h.entries[h.head].HotChild
	if hot == NoEntry {
		return Commit{}, false
	}
	if hot < 0 || hot >= len(h.entries) {
		corrupt("redo", "hot child %d is out of bounds [0,%d)", hot, len(h.entries))
	}
	if !slices.Contains(h.entries[h.head].Children, hot) {
		corrupt("redo", "hot child %d is not a child of entry %d", hot, h.head)
	}

	h.head = hot
	return h.entries[hot].Commit.Clone(), true
}

// CanUndo returns true if the head is not the root.
func (h *History) CanUndo() bool {
	return len(h.entries) > 0 && h.entries[h.head].Parent != NoEntry
}

// CanRedo returns true if the head has a hot child to redo into.
func (h *History) CanRedo() bool {
	return len(h.entries) > 0 && h.entries[h.head].HotChild != NoEntry
}

// Head returns the index of the current entry.
func (h *History) Head() int {
	return h.head
}

// Len returns the number of entries, including the root.
func (h *History) Len() int {
	return len(h.entries)
}

// Entry returns a copy of the entry at idx.
// The second result is false if idx is out of range.
func (h *History) Entry(idx int) (Entry, bool) {
	if idx < 0 || idx >= len(h.entries) {
		return Entry{}, false
	}
	return h.entries[idx].clone(), true
}

// Entries returns a copy of every entry in arena order.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.clone()
	}
	return out
}

// Depth returns the number of edges between the head and the root.
func (h *History) Depth() int {
	h.check("depth")

	depth := 0
	for idx := h.head; h.entries[idx].Parent != NoEntry; idx = h.entries[idx].Parent {
		depth++
	}
	return depth
}
