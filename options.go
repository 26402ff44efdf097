package jffs2

// Option configures an Extractor.
type Option func(*Extractor)

// defaultParentCycleLimit is the bound on parent-inode walk iterations
// described in spec.md's "Parent-walk cycle" design note.
const defaultParentCycleLimit = 100

// WithParentCycleLimit overrides the parent-inode walk bound used when
// reconstructing a dirent's full path. Mainly useful for tests that want
// to exercise the cycle guard without building a 100-entry chain.
func WithParentCycleLimit(n int) Option {
	return func(e *Extractor) {
		e.parentCycleLimit = n
	}
}

// WithMmapThreshold overrides the image size, in bytes, above which the
// image is memory-mapped rather than read fully into the heap.
func WithMmapThreshold(n int64) Option {
	return func(e *Extractor) {
		e.mmapThreshold = n
	}
}
