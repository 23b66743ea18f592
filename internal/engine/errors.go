package engine

import (
	"errors"

	"github.com/dshills/piecetable/internal/engine/buffer"
	"github.com/dshills/piecetable/internal/engine/tracking"
)

// Errors returned by engine operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the valid buffer range.
	ErrOffsetOutOfRange = buffer.ErrOffsetOutOfRange

	// ErrEmptyInput indicates an insertion of empty text or a zero-length removal.
	ErrEmptyInput = buffer.ErrEmptyInput

	// ErrRangeInvalid indicates an invalid range (e.g., end <= start).
	ErrRangeInvalid = buffer.ErrRangeInvalid

	// ErrSplitsCharacter indicates an offset inside a character under the
	// configured boundary mode.
	ErrSplitsCharacter = buffer.ErrSplitsCharacter

	// ErrSnapshotNotFound indicates a snapshot was not found.
	ErrSnapshotNotFound = tracking.ErrSnapshotNotFound

	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")
)
