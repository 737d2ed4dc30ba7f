// Package content models object content for streaming uploads. A Content
// wraps one of the supported sources (in-memory bytes, a file path, or an
// arbitrary io.Reader with an optional length hint) behind a single lazy
// chunk producer, and a ChunkReader slices that producer into fixed-size
// reads without copying.
package content

import (
	"errors"
	"io"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
)

// ErrContentConsumed is returned by Stream when the Content has already been
// streamed once.
var ErrContentConsumed = errors.New("content: already consumed")

// readChunkSize is the buffer size used when pulling from file and reader
// backed sources.
const readChunkSize = 1024 * 1024

// Content is object content that can be uploaded. It is consumed exactly
// once: Stream may only be called a single time.
type Content struct {
	kind sourceKind

	buf        *SegmentedBytes
	filesystem fs.Filesystem
	path       string
	reader     io.Reader
	hint       Size

	consumed bool
}

type sourceKind int

const (
	kindBytes sourceKind = iota
	kindFile
	kindReader
)

// FromBytes returns Content backed by the given slice. The slice is retained
// without copying and must not be modified afterwards.
func FromBytes(p []byte) *Content {
	return &Content{kind: kindBytes, buf: SegmentedBytesOf(p), hint: Known(uint64(len(p)))}
}

// FromString returns Content backed by the bytes of s.
func FromString(s string) *Content {
	return FromBytes([]byte(s))
}

// FromSegmented returns Content backed by an existing SegmentedBytes.
func FromSegmented(sb *SegmentedBytes) *Content {
	return &Content{kind: kindBytes, buf: sb, hint: Known(uint64(sb.Len()))}
}

// FromFile returns Content backed by a file on the given filesystem. The
// file is opened when streaming starts; its size at open time becomes the
// content size.
func FromFile(filesystem fs.Filesystem, path string) *Content {
	return &Content{kind: kindFile, filesystem: filesystem, path: path}
}

// FromReader returns Content backed by an arbitrary reader. The size hint
// may be Unknown for open-ended streams; when it is known it is treated as
// the declared object size.
func FromReader(r io.Reader, size Size) *Content {
	return &Content{kind: kindReader, reader: r, hint: size}
}

// Stream begins consuming the content and returns a ChunkReader over it.
// File-backed content is opened (and sized) here; reads happen lazily as the
// ChunkReader is driven. Stream returns ErrContentConsumed if called twice.
func (c *Content) Stream() (*ChunkReader, error) {
	if c.consumed {
		return nil, ErrContentConsumed
	}
	c.consumed = true

	switch c.kind {
	case kindFile:
		file, err := c.filesystem.Open(c.path)
		if err != nil {
			return nil, err
		}
		info, err := file.Stat()
		if err != nil {
			file.Close()
			return nil, err
		}
		src := &fileSource{file: file}
		return newChunkReader(src, Known(uint64(info.Size())), src), nil
	case kindReader:
		return newChunkReader(&readerSource{r: c.reader}, c.hint, nil), nil
	default:
		return newChunkReader(&segmentsSource{segments: c.buf.Segments()}, c.hint, nil), nil
	}
}

// chunkSource produces the next non-empty chunk from the underlying source,
// or io.EOF when exhausted.
type chunkSource interface {
	next() ([]byte, error)
}

// segmentsSource yields the segments of an in-memory buffer one at a time,
// without copying.
type segmentsSource struct {
	segments [][]byte
	i        int
}

func (s *segmentsSource) next() ([]byte, error) {
	for s.i < len(s.segments) {
		seg := s.segments[s.i]
		s.i++
		if len(seg) > 0 {
			return seg, nil
		}
	}
	return nil, io.EOF
}

// readerSource pulls chunks from an io.Reader. Each chunk gets a fresh
// buffer because segments are retained by the consumer.
type readerSource struct {
	r io.Reader
}

func (s *readerSource) next() ([]byte, error) {
	buf := make([]byte, readChunkSize)
	for {
		n, err := s.r.Read(buf)
		if n > 0 {
			return buf[:n], nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// fileSource pulls chunks from an open file and closes it once the file is
// exhausted or fails. It also implements io.Closer so an abandoned
// ChunkReader can release the handle early.
type fileSource struct {
	file fs.File
}

func (s *fileSource) next() ([]byte, error) {
	if s.file == nil {
		return nil, io.EOF
	}
	buf := make([]byte, readChunkSize)
	for {
		n, err := s.file.Read(buf)
		if n > 0 {
			return buf[:n], nil
		}
		if err != nil {
			s.Close()
			return nil, err
		}
	}
}

func (s *fileSource) Close() error {
	if s.file == nil {
		return nil
	}
	file := s.file
	s.file = nil
	return file.Close()
}
