package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the document.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrEmptyInput indicates an insert of empty text or a zero-length removal.
	ErrEmptyInput = errors.New("empty input")

	// ErrRangeInvalid indicates a range whose lower bound is not below its upper bound.
	ErrRangeInvalid = errors.New("invalid range")

	// ErrSplitsCharacter indicates an offset inside a UTF-8 sequence or
	// grapheme cluster while boundary checking is enabled.
	ErrSplitsCharacter = errors.New("offset splits a character")
)
