package jffs2

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// materialize walks fsys.LatestDirent and writes every resolvable entry
// under outputDir. A single entry failing (broken parent chain, unsafe
// path, unsupported file type, write error) is logged and skipped; it
// never aborts the rest of the run.
func (e *Extractor) materialize(fsys *Filesystem, outputDir string) error {
	root, err := filepath.Abs(outputDir)
	if err != nil {
		return err
	}
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return err
	}

	idents := make([]uint32, 0, len(fsys.LatestDirent))
	for ino := range fsys.LatestDirent {
		idents = append(idents, ino)
	}
	sort.Slice(idents, func(i, j int) bool { return idents[i] < idents[j] })

	for _, ino := range idents {
		d := fsys.LatestDirent[ino]

		rel, ok := resolvePath(fsys, d, e.parentCycleLimit)
		if !ok {
			log.Printf("jffs2: skipping inode %d (%q): could not resolve full path to root", d.Ino, d.Name)
			continue
		}

		full, err := safeJoin(root, rel)
		if err != nil {
			log.Printf("jffs2: skipping inode %d (%q): %v", d.Ino, rel, err)
			continue
		}

		if err := writeEntry(fsys, d, full); err != nil {
			log.Printf("jffs2: skipping inode %d (%s): %v", d.Ino, full, err)
		}
	}

	return nil
}

// resolvePath reconstructs the path (relative to the extraction root) of
// the directory entry d by walking its parent chain up to rootIno, the
// well-known parent inode of the root directory, which is never itself a
// dirent target. The walk gives up after cycleLimit hops, guarding
// against a corrupt image whose pino links form a cycle.
func resolvePath(fsys *Filesystem, d Dirent, cycleLimit int) (string, bool) {
	segments := []string{string(d.Name)}
	pino := d.Pino

	for i := 0; i < cycleLimit; i++ {
		if pino == rootIno {
			for l, r := 0, len(segments)-1; l < r; l, r = l+1, r-1 {
				segments[l], segments[r] = segments[r], segments[l]
			}
			return filepath.Join(segments...), true
		}

		parent, ok := fsys.LatestDirent[pino]
		if !ok {
			return "", false
		}
		segments = append(segments, string(parent.Name))
		pino = parent.Pino
	}

	return "", false
}

// safeJoin joins rel onto root and rejects any result that escapes root,
// defending against a crafted dirent name (e.g. containing "..") trying
// to write outside the extraction directory.
func safeJoin(root, rel string) (string, error) {
	full := filepath.Clean(filepath.Join(root, rel))
	if full != root && !strings.HasPrefix(full, root+string(os.PathSeparator)) {
		return "", ErrUnsafePath
	}
	// Resolve symlinks in the longest existing prefix of full, so an
	// already-extracted symlink cannot redirect the write outside root.
	existing := full
	for _, err := os.Lstat(existing); err != nil; _, err = os.Lstat(existing) {
		existing = filepath.Dir(existing)
	}
	resolved, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return "", err
	}
	if resolved != root && !strings.HasPrefix(resolved, root+string(os.PathSeparator)) {
		return "", ErrUnsafePath
	}
	return full, nil
}

// writeEntry materializes a single directory entry as a directory,
// regular file, or symlink, picking the kind from Fragments[d.Ino]'s
// first recorded fragment. A dirent with no fragments is materialized
// only when d.Type marks a regular file (as an empty file); any other
// such entry is skipped.
func writeEntry(fsys *Filesystem, d Dirent, full string) error {
	frags := fsys.Fragments[d.Ino]

	var mode uint32
	haveMode := false
	if len(frags) > 0 {
		mode = frags[0].Mode
		haveMode = true
	}

	switch {
	case haveMode && IsDir(mode):
		return mkdirReplacing(full)

	case haveMode && IsSymlink(mode):
		return writeSymlink(frags, full)

	case haveMode && IsRegular(mode), !haveMode && d.Type.IsRegular():
		return writeRegular(frags, full, mode, haveMode)

	default:
		if haveMode {
			return fmt.Errorf("%w: mode %s", ErrUnknownFileType, UnixToMode(mode))
		}
		return fmt.Errorf("no inode fragments for dirent type %s", d.Type)
	}
}

// mkdirReplacing creates full as a directory, along with any missing
// ancestors. If a non-directory already occupies the path, it is removed
// first, mirroring the original unpacker's dump_fs behavior of clearing a
// stale non-directory before creating a directory entry there.
func mkdirReplacing(full string) error {
	if fi, err := os.Lstat(full); err == nil && !fi.IsDir() {
		if err := os.RemoveAll(full); err != nil {
			return err
		}
	}
	return os.MkdirAll(full, 0o755)
}

func writeSymlink(frags []Inode, full string) error {
	if len(frags) == 0 {
		return ErrShortBuffer
	}
	target := string(frags[0].Data)
	if _, err := os.Lstat(full); err == nil {
		return nil // already present, don't clobber
	}
	return os.Symlink(target, full)
}

// writeRegular reassembles a file's fragments in offset order, seeking
// and writing each one, leaving any gap between fragments as a sparse
// (zero-filled) hole. The final size is the larger of the highest
// fragment's end offset and the isize of the highest-version fragment.
// The permission bits are applied after writing.
func writeRegular(frags []Inode, full string, mode uint32, haveMode bool) error {
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}

	perm := fs.FileMode(0o644)
	if haveMode {
		perm = Perm(mode)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer f.Close()

	sorted := make([]Inode, len(frags))
	copy(sorted, frags)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	var end int64
	var isize int64
	var latest uint32
	for i, fr := range sorted {
		if _, err := f.Seek(int64(fr.Offset), io.SeekStart); err != nil {
			return err
		}
		if _, err := f.Write(fr.Data); err != nil {
			return err
		}
		if e := int64(fr.Offset) + int64(len(fr.Data)); e > end {
			end = e
		}
		if i == 0 || fr.Version >= latest {
			latest = fr.Version
			isize = int64(fr.Isize)
		}
	}

	final := end
	if isize > final {
		final = isize
	}
	if err := f.Truncate(final); err != nil {
		return err
	}
	return f.Chmod(perm)
}
