// Package splice applies byte-range replacements to a content buffer.
//
// Node offsets are only valid against the buffer version they were scanned
// from, so a mutation pass computes every edit over one scan and applies
// them together here; the result is a fresh buffer and all prior offsets
// are stale.
package splice

import (
	"fmt"
	"sort"
	"strings"
)

// Edit replaces the bytes [Start, End) of a buffer with Text.
type Edit struct {
	// Start is the byte index where the edit begins (inclusive).
	Start int

	// End is the byte index where the edit ends (exclusive).
	End int

	// Text is the replacement markup. It is spliced verbatim: producing
	// well-formed, escaped markup is the caller's responsibility.
	Text string
}

// Delta returns the buffer length change this edit causes.
func (e Edit) Delta() int {
	return len(e.Text) - (e.End - e.Start)
}

// RangeError describes an edit whose offsets do not fit the buffer.
type RangeError struct {
	Edit    Edit
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

// OverlapError describes two edits competing for the same bytes.
type OverlapError struct {
	First  Edit
	Second Edit
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

// Validate checks that every edit has offsets within a buffer of the given
// length. It returns the first offending edit's error, or nil.
func Validate(edits []Edit, contentLen int) error {
	for _, e := range edits {
		if e.Start < 0 {
			return &RangeError{Edit: e, Message: "start offset is negative"}
		}
		if e.End < e.Start {
			return &RangeError{Edit: e, Message: "end offset is before start offset"}
		}
		if e.End > contentLen {
			return &RangeError{
				Edit:    e,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", e.End, contentLen),
			}
		}
	}
	return nil
}

// Sort orders edits by start offset, then end offset, in place.
func Sort(edits []Edit) {
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].Start != edits[j].Start {
			return edits[i].Start < edits[j].Start
		}
		return edits[i].End < edits[j].End
	})
}

// Prepare validates, sorts, and checks edits for overlap, returning a slice
// that Apply accepts. The input slice is not modified.
func Prepare(edits []Edit, contentLen int) ([]Edit, error) {
	if err := Validate(edits, contentLen); err != nil {
		return nil, err
	}

	prepared := append([]Edit(nil), edits...)
	Sort(prepared)

	for i := 1; i < len(prepared); i++ {
		if prepared[i].Start < prepared[i-1].End {
			return nil, &OverlapError{First: prepared[i-1], Second: prepared[i]}
		}
	}
	return prepared, nil
}

// Apply splices prepared edits into content and returns the new buffer.
// Edits must be sorted and non-overlapping (see Prepare). The input buffer
// is never modified.
func Apply(content string, edits []Edit) string {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += e.Delta()
	}

	var out strings.Builder
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.WriteString(content[cursor:e.Start])
		out.WriteString(e.Text)
		cursor = e.End
	}
	out.WriteString(content[cursor:])

	return out.String()
}

// Replace is the single-edit convenience: it substitutes [start, end) with
// text and returns the new buffer.
func Replace(content string, start, end int, text string) (string, error) {
	edits, err := Prepare([]Edit{{Start: start, End: end, Text: text}}, len(content))
	if err != nil {
		return "", err
	}
	return Apply(content, edits), nil
}
