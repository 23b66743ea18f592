// Package piece defines the span references that make up a piece table.
//
// A Piece names a contiguous run of bytes in one of two text logs: the
// original log, fixed when the buffer is created, and the addition log, which
// only ever grows. Because neither log is rewritten, a Piece stays valid for
// the lifetime of the buffer that produced it.
package piece
