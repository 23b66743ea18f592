package engine

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/piecetable/internal/engine/buffer"
	"github.com/dshills/piecetable/internal/engine/history"
	"github.com/dshills/piecetable/internal/engine/piece"
	"github.com/dshills/piecetable/internal/engine/tracking"
	"github.com/dshills/piecetable/internal/logging"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// BoundaryMode selects which offsets are accepted.
	BoundaryMode = buffer.BoundaryMode

	// Piece is a reference into one of the two text logs.
	Piece = piece.Piece

	// HistoryEntry is a node of the undo history.
	HistoryEntry = history.Entry

	// SnapshotID uniquely identifies a named snapshot.
	SnapshotID = tracking.SnapshotID

	// DiffResult contains the result of a diff operation.
	DiffResult = tracking.DiffResult
)

// Re-export constants.
const (
	BoundaryBytes     = buffer.BoundaryBytes
	BoundaryRunes     = buffer.BoundaryRunes
	BoundaryGraphemes = buffer.BoundaryGraphemes
)

// Engine is the main facade for the text engine.
// It combines the piece-table buffer, undo/redo and snapshots into a
// unified, thread-safe API.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	id        string
	buf       *buffer.Buffer
	snapshots *tracking.SnapshotManager
	logger    *logging.Logger

	// Configuration
	boundary buffer.BoundaryMode
	readOnly bool

	// revision counts applied state transitions.
	revision uint64

	// Initialization
	initContent string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		id:     uuid.NewString(),
		logger: logging.NullLogger,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.init(e.initContent)
	return e
}

// NewFromReader creates an Engine whose original text is read from r.
// WithContent is ignored when reading from a reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	e := &Engine{
		id:     uuid.NewString(),
		logger: logging.NullLogger,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.init(string(data))
	return e, nil
}

func (e *Engine) init(content string) {
	e.logger = e.logger.WithField("engine", e.id)
	e.buf = buffer.New(content,
		buffer.WithBoundary(e.boundary),
		buffer.WithLogger(e.logger),
	)
	e.snapshots = tracking.NewSnapshotManager()
	e.logger.WithComponent("engine").Debug("created engine: %d bytes, boundary=%s, readOnly=%v",
		len(content), e.boundary, e.readOnly)
}

// ID returns the engine's unique identifier.
func (e *Engine) ID() string {
	return e.id
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full buffer content.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.String()
}

// WriteTo writes the full buffer content to w.
func (e *Engine) WriteTo(w io.Writer) (int64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.WriteTo(w)
}

// Len returns the total byte length of the buffer.
func (e *Engine) Len() ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Len()
}

// IsEmpty returns true if the buffer is empty.
func (e *Engine) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.IsEmpty()
}

// Slice returns the text in [lower, upper).
func (e *Engine) Slice(lower, upper ByteOffset) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Slice(lower, upper)
}

// SliceFrom returns the text from lower to the end of the buffer.
func (e *Engine) SliceFrom(lower ByteOffset) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.SliceFrom(lower)
}

// SliceTo returns the text in [0, upper).
func (e *Engine) SliceTo(upper ByteOffset) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.SliceTo(upper)
}

// SliceToInclusive returns the text in [0, upper].
func (e *Engine) SliceToInclusive(upper ByteOffset) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.SliceToInclusive(upper)
}

// SliceAll returns the whole text. It fails on an empty buffer.
func (e *Engine) SliceAll() (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.SliceAll()
}

// SliceInclusive returns the text in [lower, upper].
func (e *Engine) SliceInclusive(lower, upper ByteOffset) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.SliceInclusive(lower, upper)
}

// Pieces returns a copy of the current piece sequence.
func (e *Engine) Pieces() []Piece {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Pieces()
}

// Boundary returns the configured boundary mode.
func (e *Engine) Boundary() BoundaryMode {
	return e.boundary
}

// Stats summarizes the internal state of the engine.
type Stats struct {
	Length      ByteOffset
	Pieces      int
	AdditionLen int64
	Entries     int
	Depth       int
	Revision    uint64
}

// Stats returns a summary of the buffer and history.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		Length:      e.buf.Len(),
		Pieces:      e.buf.PieceCount(),
		AdditionLen: e.buf.AdditionLen(),
		Entries:     e.buf.HistoryLen(),
		Depth:       e.buf.HistoryDepth(),
		Revision:    e.revision,
	}
}

// IsReadOnly returns true if the engine rejects edits.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// Revision returns the number of state transitions applied so far.
// Edits, undos and redos each count as one.
func (e *Engine) Revision() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.revision
}

// ============================================================================
// Write Operations
// ============================================================================

// Insert inserts text at the given offset.
func (e *Engine) Insert(offset ByteOffset, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if err := e.buf.Insert(offset, text); err != nil {
		return err
	}
	e.revision++
	return nil
}

// Append inserts text at the end of the buffer.
func (e *Engine) Append(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if err := e.buf.Append(text); err != nil {
		return err
	}
	e.revision++
	return nil
}

// Remove deletes n bytes starting at offset.
func (e *Engine) Remove(offset, n ByteOffset) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if err := e.buf.Remove(offset, n); err != nil {
		return err
	}
	e.revision++
	return nil
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo reverts the current history entry.
// It returns false if there was nothing to undo.
func (e *Engine) Undo() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return false, ErrReadOnly
	}
	if !e.buf.Undo() {
		return false, nil
	}
	e.revision++
	return true, nil
}

// HotRedo re-applies the most recently visited child of the current entry.
// It returns false if there was nothing to redo.
func (e *Engine) HotRedo() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return false, ErrReadOnly
	}
	if !e.buf.HotRedo() {
		return false, nil
	}
	e.revision++
	return true, nil
}

// CanUndo returns true if there are operations to undo.
func (e *Engine) CanUndo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.CanUndo()
}

// CanRedo returns true if there are operations to redo.
func (e *Engine) CanRedo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.CanRedo()
}

// HistoryHead returns the index of the current history entry.
func (e *Engine) HistoryHead() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.HistoryHead()
}

// HistoryEntry returns a copy of the history entry at idx.
func (e *Engine) HistoryEntry(idx int) (HistoryEntry, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.HistoryEntry(idx)
}

// HistoryEntries returns a copy of every history entry, indexed by entry ID.
func (e *Engine) HistoryEntries() []HistoryEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.HistoryEntries()
}

// ============================================================================
// Snapshots
// ============================================================================

// CreateSnapshot captures the current text under name.
// An existing snapshot with the same name is replaced.
func (e *Engine) CreateSnapshot(name string) SnapshotID {
	e.mu.RLock()
	defer e.mu.RUnlock()

	id := e.snapshots.Create(name, e.buf.Snapshot(), e.revision)
	e.logger.WithComponent("engine").Debug("snapshot %q created at revision %d", name, e.revision)
	return id
}

// SnapshotByName returns the ID of the snapshot with the given name.
func (e *Engine) SnapshotByName(name string) (SnapshotID, bool) {
	snap, ok := e.snapshots.GetByName(name)
	if !ok {
		return "", false
	}
	return snap.ID, true
}

// SnapshotText returns the text captured by a snapshot.
func (e *Engine) SnapshotText(id SnapshotID) (string, error) {
	snap, ok := e.snapshots.Get(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return snap.Text(), nil
}

// DiffSinceSnapshot returns the difference between a snapshot and the
// current text.
func (e *Engine) DiffSinceSnapshot(id SnapshotID) (DiffResult, error) {
	snap, ok := e.snapshots.Get(id)
	if !ok {
		return DiffResult{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return tracking.Diff(snap.Text(), e.Text()), nil
}

// DeleteSnapshot removes a snapshot.
func (e *Engine) DeleteSnapshot(id SnapshotID) error {
	if !e.snapshots.Delete(id) {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return nil
}

// Snapshots returns all snapshots in creation order.
func (e *Engine) Snapshots() []*tracking.Snapshot {
	return e.snapshots.List()
}
