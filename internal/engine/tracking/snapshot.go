package tracking

import (
	"cmp"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Errors returned by snapshot operations.
var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// SnapshotID uniquely identifies a named snapshot.
type SnapshotID string

// NewSnapshotID generates a new unique snapshot ID.
func NewSnapshotID() SnapshotID {
	return SnapshotID(uuid.NewString())
}

// Text is the immutable document content a snapshot keeps.
type Text interface {
	String() string
	Len() int64
}

// Snapshot represents a named checkpoint of document state.
// Snapshots are immutable and can be safely shared across goroutines.
type Snapshot struct {
	// ID uniquely identifies this snapshot.
	ID SnapshotID

	// Name is the human-readable name for this snapshot.
	Name string

	// Timestamp when this snapshot was created.
	Timestamp time.Time

	// Revision is the document revision at the time of snapshot.
	Revision uint64

	text Text
	seq  uint64 // creation order
}

// Text returns the full text at this snapshot.
func (s *Snapshot) Text() string {
	return s.text.String()
}

// Len returns the byte length at this snapshot.
func (s *Snapshot) Len() int64 {
	return s.text.Len()
}

// Age returns how long ago this snapshot was created.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.Timestamp)
}

// SnapshotManager manages named snapshots.
// All operations are thread-safe.
type SnapshotManager struct {
	mu        sync.RWMutex
	snapshots map[SnapshotID]*Snapshot
	byName    map[string]*Snapshot
	seq       uint64
}

// NewSnapshotManager creates a new snapshot manager.
func NewSnapshotManager() *SnapshotManager {
	return &SnapshotManager{
		snapshots: make(map[SnapshotID]*Snapshot),
		byName:    make(map[string]*Snapshot),
	}
}

// Create creates a new snapshot of text.
// If a snapshot with the same non-empty name exists, it is replaced.
func (sm *SnapshotManager) Create(name string, text Text, revision uint64) SnapshotID {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if existing, ok := sm.byName[name]; ok {
		delete(sm.snapshots, existing.ID)
	}

	sm.seq++
	snap := &Snapshot{
		ID:        NewSnapshotID(),
		Name:      name,
		Timestamp: time.Now(),
		Revision:  revision,
		text:      text,
		seq:       sm.seq,
	}

	sm.snapshots[snap.ID] = snap
	if name != "" {
		sm.byName[name] = snap
	}
	return snap.ID
}

// Get returns the snapshot with the given ID.
func (sm *SnapshotManager) Get(id SnapshotID) (*Snapshot, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	snap, ok := sm.snapshots[id]
	return snap, ok
}

// GetByName returns the snapshot with the given name.
func (sm *SnapshotManager) GetByName(name string) (*Snapshot, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	snap, ok := sm.byName[name]
	return snap, ok
}

// Delete removes a snapshot. It returns false if no such snapshot exists.
func (sm *SnapshotManager) Delete(id SnapshotID) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	snap, ok := sm.snapshots[id]
	if !ok {
		return false
	}
	delete(sm.snapshots, id)
	if sm.byName[snap.Name] == snap {
		delete(sm.byName, snap.Name)
	}
	return true
}

// List returns all snapshots in creation order.
func (sm *SnapshotManager) List() []*Snapshot {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	out := make([]*Snapshot, 0, len(sm.snapshots))
	for _, snap := range sm.snapshots {
		out = append(out, snap)
	}
	slices.SortFunc(out, func(a, b *Snapshot) int {
		return cmp.Compare(a.seq, b.seq)
	})
	return out
}

// Count returns the number of snapshots.
func (sm *SnapshotManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.snapshots)
}
