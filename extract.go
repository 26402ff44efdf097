package jffs2

import (
	"fmt"
	"log"
	"os"

	"github.com/NullPointerExeptionBruh/jffs2extract/image"
)

// rootIno is JFFS2's well-known root inode number. It is never itself a
// dirent target: a dirent's parent chain terminates when it reaches
// rootIno, not when a lookup happens to fail.
const rootIno = 1

// Extractor decodes a JFFS2 image and materializes it onto a host
// directory. The zero value is not usable; construct one with New.
type Extractor struct {
	parentCycleLimit int
	mmapThreshold    int64
}

// New creates an Extractor with the given options applied over the
// defaults described in spec.md (100-iteration parent cycle guard,
// 100 MiB mmap threshold).
func New(opts ...Option) *Extractor {
	e := &Extractor{
		parentCycleLimit: defaultParentCycleLimit,
		mmapThreshold:    image.MmapThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads the JFFS2 image at imagePath and writes its reconstructed
// directory tree into outputDir, creating it if absent. Preflight
// failures (image unreadable, output path exists but isn't a directory)
// are returned as fatal errors; per-entry problems are logged and do not
// abort the run.
func (e *Extractor) Extract(imagePath, outputDir string) error {
	if fi, err := os.Stat(outputDir); err == nil {
		if !fi.IsDir() {
			return ErrNotDirectory
		}
	} else if os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("jffs2: creating output directory: %w", err)
		}
	} else {
		return fmt.Errorf("jffs2: stat output directory: %w", err)
	}

	img, err := image.Open(imagePath, image.WithMmapThreshold(e.mmapThreshold))
	if err != nil {
		return fmt.Errorf("jffs2: opening image: %w", err)
	}
	defer img.Close()

	return e.ExtractImage(img, outputDir)
}

// ExtractImage runs the scan and materialize passes against an
// already-open image, for callers (and tests) that construct an
// image.Image directly instead of going through a file path.
func (e *Extractor) ExtractImage(img image.Image, outputDir string) error {
	fsys, stats := scan(img)
	log.Printf("jffs2: scanned %d bytes: %d nodes (%d dirents retained, %d fragments, %d resyncs, %d body CRC mismatches)",
		img.Len(), stats.NodesSeen, stats.DirentsRetained, stats.FragmentsCollected, stats.HeaderResyncs, stats.BodyCRCMismatches)

	return e.materialize(fsys, outputDir)
}
