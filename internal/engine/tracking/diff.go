package tracking

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffType indicates the type of a diff hunk.
type DiffType uint8

const (
	// DiffEqual indicates unchanged text.
	DiffEqual DiffType = iota
	// DiffInsert indicates text present only in the new version.
	DiffInsert
	// DiffDelete indicates text present only in the old version.
	DiffDelete
)

// String returns the string representation of the diff type.
func (dt DiffType) String() string {
	switch dt {
	case DiffEqual:
		return "equal"
	case DiffInsert:
		return "insert"
	case DiffDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Hunk is a run of text with a single diff type.
type Hunk struct {
	Type DiffType
	Text string
}

// DiffResult is the character-level difference between two texts.
type DiffResult struct {
	Hunks []Hunk
	// Distance is the Levenshtein distance implied by the hunks.
	Distance int
}

// Diff computes the difference between oldText and newText.
// Multi-line inputs are diffed line by line first, then refined.
func Diff(oldText, newText string) DiffResult {
	dmp := diffpatch.New()
	lineMode := strings.Contains(oldText, "\n") && strings.Contains(newText, "\n")
	diffs := dmp.DiffMain(oldText, newText, lineMode)
	diffs = dmp.DiffCleanupSemantic(diffs)

	result := DiffResult{
		Hunks:    make([]Hunk, 0, len(diffs)),
		Distance: dmp.DiffLevenshtein(diffs),
	}
	for _, d := range diffs {
		var typ DiffType
		switch d.Type {
		case diffpatch.DiffInsert:
			typ = DiffInsert
		case diffpatch.DiffDelete:
			typ = DiffDelete
		default:
			typ = DiffEqual
		}
		result.Hunks = append(result.Hunks, Hunk{Type: typ, Text: d.Text})
	}
	return result
}

// HasChanges returns true if the texts differ.
func (dr DiffResult) HasChanges() bool {
	for _, h := range dr.Hunks {
		if h.Type != DiffEqual {
			return true
		}
	}
	return false
}

// Inserted returns the number of bytes present only in the new text.
func (dr DiffResult) Inserted() int {
	return dr.count(DiffInsert)
}

// Deleted returns the number of bytes present only in the old text.
func (dr DiffResult) Deleted() int {
	return dr.count(DiffDelete)
}

func (dr DiffResult) count(typ DiffType) int {
	n := 0
	for _, h := range dr.Hunks {
		if h.Type == typ {
			n += len(h.Text)
		}
	}
	return n
}

// Pretty renders the diff inline, marking deletions as [-text-] and
// insertions as {+text+}.
func (dr DiffResult) Pretty() string {
	var sb strings.Builder
	for _, h := range dr.Hunks {
		switch h.Type {
		case DiffInsert:
			sb.WriteString("{+")
			sb.WriteString(h.Text)
			sb.WriteString("+}")
		case DiffDelete:
			sb.WriteString("[-")
			sb.WriteString(h.Text)
			sb.WriteString("-]")
		default:
			sb.WriteString(h.Text)
		}
	}
	return sb.String()
}
