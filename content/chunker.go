package content

import (
	"errors"
	"io"
)

// ChunkReader serves fixed-size reads from a chunk source. When a source
// chunk crosses a read boundary it is split by sub-slicing, never by
// copying, and the tail is buffered for the next call. A ChunkReader is
// single-owner: it is not safe for concurrent ReadUpto calls.
type ChunkReader struct {
	src    chunkSource
	size   Size
	extra  []byte
	closer io.Closer
}

func newChunkReader(src chunkSource, size Size, closer io.Closer) *ChunkReader {
	return &ChunkReader{src: src, size: size, closer: closer}
}

// Size returns the total content size declared by the source, which may be
// Unknown for open-ended streams.
func (cr *ChunkReader) Size() Size { return cr.size }

// ReadUpto reads up to n bytes and returns them as a SegmentedBytes. It
// returns fewer than n bytes only when the source is exhausted. At most one
// fetch from the underlying source is outstanding at a time.
func (cr *ChunkReader) ReadUpto(n int64) (*SegmentedBytes, error) {
	sb := NewSegmentedBytes()
	remaining := n

	if cr.extra != nil {
		l := int64(len(cr.extra))
		if l <= remaining {
			sb.Append(cr.extra)
			cr.extra = nil
			remaining -= l
		} else {
			sb.Append(cr.extra[:remaining])
			cr.extra = cr.extra[remaining:]
			return sb, nil
		}
	}

	for remaining > 0 {
		chunk, err := cr.src.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		l := int64(len(chunk))
		if l == 0 {
			break
		}
		if l <= remaining {
			sb.Append(chunk)
			remaining -= l
		} else {
			sb.Append(chunk[:remaining])
			cr.extra = chunk[remaining:]
			break
		}
	}
	return sb, nil
}

// Close releases the underlying source early, such as the file handle of
// file-backed content. It is safe to call after exhaustion and safe to call
// more than once.
func (cr *ChunkReader) Close() error {
	if cr.closer == nil {
		return nil
	}
	return cr.closer.Close()
}
