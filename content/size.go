package content

import "fmt"

// Size represents a content length that may be unknowable ahead of streaming,
// such as when uploading from a pipe or a network stream.
type Size struct {
	value uint64
	known bool
}

// Unknown is the Size of content whose total length is not known up front.
var Unknown = Size{}

// Known returns a Size for content whose total length is known.
func Known(n uint64) Size {
	return Size{value: n, known: true}
}

// IsKnown reports whether the total length is known.
func (s Size) IsKnown() bool { return s.known }

// Value returns the total length in bytes. The result is only meaningful
// when IsKnown reports true.
func (s Size) Value() uint64 { return s.value }

func (s Size) String() string {
	if !s.known {
		return "unknown"
	}
	return fmt.Sprintf("%d", s.value)
}
