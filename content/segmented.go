package content

import (
	"bytes"
	"io"
)

// SegmentedBytes is an append-only aggregation of byte segments. Appending
// never copies: each segment is retained as-is, and iteration hands back the
// same slices in insertion order. Segments must be treated as immutable once
// appended; they may then be shared freely across goroutines.
type SegmentedBytes struct {
	segments [][]byte
	total    int
}

// NewSegmentedBytes returns an empty SegmentedBytes.
func NewSegmentedBytes() *SegmentedBytes {
	return &SegmentedBytes{}
}

// SegmentedBytesOf returns a SegmentedBytes holding the given slice as its
// single segment. The slice is not copied.
func SegmentedBytesOf(p []byte) *SegmentedBytes {
	sb := &SegmentedBytes{}
	sb.Append(p)
	return sb
}

// Append adds a segment. The slice is retained without copying; the caller
// must not modify it afterwards. Empty segments are dropped.
func (sb *SegmentedBytes) Append(p []byte) {
	if len(p) == 0 {
		return
	}
	sb.segments = append(sb.segments, p)
	sb.total += len(p)
}

// Len returns the total number of bytes across all segments.
func (sb *SegmentedBytes) Len() int { return sb.total }

// IsEmpty reports whether the buffer holds no bytes.
func (sb *SegmentedBytes) IsEmpty() bool { return sb.total == 0 }

// Segments returns the underlying segments in insertion order. The returned
// slices alias the buffer's storage and must not be modified.
func (sb *SegmentedBytes) Segments() [][]byte { return sb.segments }

// Reader returns an io.Reader over the concatenated segments without
// flattening them into a single allocation.
func (sb *SegmentedBytes) Reader() io.Reader {
	readers := make([]io.Reader, len(sb.segments))
	for i, seg := range sb.segments {
		readers[i] = bytes.NewReader(seg)
	}
	return io.MultiReader(readers...)
}

// Bytes copies all content into a single contiguous slice.
//
// This is slow and intended for testing and debugging only; hot paths should
// use Segments or Reader instead.
func (sb *SegmentedBytes) Bytes() []byte {
	buf := make([]byte, 0, sb.total)
	for _, seg := range sb.segments {
		buf = append(buf, seg...)
	}
	return buf
}
