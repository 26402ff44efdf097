// Package image provides a backing-store-agnostic read-only view of a
// JFFS2 image: either a heap-resident byte slice for small images, or a
// memory-mapped file for large ones, behind the same narrow interface.
package image

import (
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// MmapThreshold is the image size, in bytes, above which Open prefers a
// memory-mapped view over reading the whole image into the heap.
const MmapThreshold = 100 << 20 // 100 MiB

// Image is the read-only, random-access view the decoder and scanner
// operate on. Both backends below satisfy it.
type Image interface {
	io.ReaderAt
	Len() int64
	Close() error
}

// heapImage backs Image with a single in-memory copy of the file.
type heapImage struct {
	buf []byte
}

func (h *heapImage) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(h.buf)) {
		return 0, io.EOF
	}
	n := copy(p, h.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (h *heapImage) Len() int64 { return int64(len(h.buf)) }

func (h *heapImage) Close() error { return nil }

// mmapImage backs Image with a memory-mapped read-only file view.
type mmapImage struct {
	r *mmap.ReaderAt
}

func (m *mmapImage) ReadAt(p []byte, off int64) (int, error) { return m.r.ReadAt(p, off) }

func (m *mmapImage) Len() int64 { return int64(m.r.Len()) }

func (m *mmapImage) Close() error { return m.r.Close() }

// Option configures Open.
type Option func(*openConfig)

type openConfig struct {
	mmapThreshold int64
}

// WithMmapThreshold overrides MmapThreshold, mainly so tests can force the
// mmap code path against a small fixture file.
func WithMmapThreshold(n int64) Option {
	return func(c *openConfig) { c.mmapThreshold = n }
}

// Open returns a read-only Image for path, choosing the backing store
// based on the file's size relative to the configured threshold. Callers
// must Close the returned Image.
func Open(path string, opts ...Option) (Image, error) {
	cfg := openConfig{mmapThreshold: MmapThreshold}
	for _, opt := range opts {
		opt(&cfg)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if fi.Size() > cfg.mmapThreshold {
		r, err := mmap.Open(path)
		if err != nil {
			return nil, err
		}
		return &mmapImage{r: r}, nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &heapImage{buf: buf}, nil
}

// FromBytes wraps an in-memory buffer as an Image, for tests that
// synthesize an image rather than reading one from disk.
func FromBytes(buf []byte) Image {
	return &heapImage{buf: buf}
}
