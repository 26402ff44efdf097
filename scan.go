package jffs2

import (
	"encoding/binary"
	"errors"
	"io"
	"log"

	"github.com/NullPointerExeptionBruh/jffs2extract/image"
)

// Filesystem is the aggregate collected by scan: the latest directory
// entry per target inode number, and every inode fragment collected per
// inode number, in the order they were encountered.
type Filesystem struct {
	LatestDirent map[uint32]Dirent
	Fragments    map[uint32][]Inode

	// direntByName tracks target ino by (pino, name), used only to apply
	// the unlink/tombstone rule during scanning (see spec's resolved
	// "Dirent with ino == 0" design note).
	direntByName map[direntKey]uint32
}

type direntKey struct {
	pino uint32
	name string
}

// Stats summarizes what the scanner observed; ExtractImage logs it on
// completion.
type Stats struct {
	NodesSeen          int
	HeaderResyncs      int
	BodyCRCMismatches  int
	DirentsRetained    int
	FragmentsCollected int
}

const scanWindow = 1 << 16 // 64 KiB magic-search read window

// scan walks img from offset 0 locating every valid DIRENT and INODE
// node by magic-scanning, exactly as described in spec.md §4.3.
func scan(img image.Image) (*Filesystem, Stats) {
	fs := &Filesystem{
		LatestDirent: make(map[uint32]Dirent),
		Fragments:    make(map[uint32][]Inode),
		direntByName: make(map[direntKey]uint32),
	}
	var stats Stats

	imgLen := img.Len()
	pos := int64(0)

	for pos < imgLen {
		magicAt, found := findMagic(img, pos, imgLen)
		if !found {
			break
		}

		hdrBuf := make([]byte, headerSize)
		if _, err := readFull(img, hdrBuf, magicAt); err != nil {
			break
		}

		h, err := peekHeader(hdrBuf)
		if err != nil {
			stats.HeaderResyncs++
			pos = magicAt + 1
			continue
		}

		if h.Totlen < headerSize || magicAt+int64(h.Totlen) > imgLen {
			stats.HeaderResyncs++
			pos = magicAt + 1
			continue
		}

		nodeBuf := make([]byte, h.Totlen)
		if _, err := readFull(img, nodeBuf, magicAt); err != nil {
			stats.HeaderResyncs++
			pos = magicAt + 1
			continue
		}

		stats.NodesSeen++

		switch h.NodeType {
		case NodeTypeDirent:
			d, err := parseDirent(nodeBuf, h.Totlen)
			if err != nil {
				stats.HeaderResyncs++
			} else {
				if !d.NodeCRCMatch || !d.NameCRCMatch {
					stats.BodyCRCMismatches++
					log.Printf("jffs2: dirent at offset %d: body CRC mismatch (node=%v name=%v)", magicAt, d.NodeCRCMatch, d.NameCRCMatch)
				}
				fs.absorbDirent(d)
			}
		case NodeTypeInode:
			n, err := parseInode(nodeBuf, h.Totlen)
			if err != nil {
				stats.HeaderResyncs++
			} else {
				if !n.NodeCRCMatch || !n.DataCRCMatch {
					stats.BodyCRCMismatches++
					log.Printf("jffs2: inode %d fragment at offset %d: body CRC mismatch (node=%v data=%v)", n.Ino, magicAt, n.NodeCRCMatch, n.DataCRCMatch)
				}
				fs.Fragments[n.Ino] = append(fs.Fragments[n.Ino], n)
				stats.FragmentsCollected++
			}
		default:
			// cleanmarker, padding, summary: ignore
		}

		pos = magicAt + int64(PAD(h.Totlen))
	}

	stats.DirentsRetained = len(fs.LatestDirent)
	return fs, stats
}

// absorbDirent applies version reconciliation and the unlink/tombstone
// rule described in spec.md's resolved Open Question: a dirent with
// ino == 0 displaces any retained record sharing its (pino, name) and is
// never itself retained, since it has no target inode to key on.
func (fs *Filesystem) absorbDirent(d Dirent) {
	key := direntKey{pino: d.Pino, name: string(d.Name)}

	if d.IsUnlink() {
		if prevIno, ok := fs.direntByName[key]; ok {
			if prev, ok := fs.LatestDirent[prevIno]; ok && prev.Pino == d.Pino && string(prev.Name) == string(d.Name) {
				delete(fs.LatestDirent, prevIno)
			}
			delete(fs.direntByName, key)
		}
		return
	}

	if prev, ok := fs.LatestDirent[d.Ino]; !ok || prev.Version < d.Version {
		fs.LatestDirent[d.Ino] = d
	}
	fs.direntByName[key] = d.Ino
}

// findMagic returns the offset of the earliest 0x1985 or 0x1984 magic
// bitmask at or after from, scanning in bounded windows so callers never
// need the whole image resident at once.
func findMagic(img image.Image, from, limit int64) (int64, bool) {
	var carry [1]byte
	haveCarry := false
	pos := from

	for pos < limit {
		n := int64(scanWindow)
		if pos+n > limit {
			n = limit - pos
		}

		buf := make([]byte, 0, n+1)
		if haveCarry {
			buf = append(buf, carry[0])
		}
		chunk := make([]byte, n)
		if _, err := readFull(img, chunk, pos); err != nil {
			return 0, false
		}
		buf = append(buf, chunk...)

		base := pos
		if haveCarry {
			base--
		}

		for i := 0; i+1 < len(buf); i++ {
			v := binary.LittleEndian.Uint16(buf[i : i+2])
			if v == MagicBitmask || v == OldMagicBitmask {
				return base + int64(i), true
			}
		}

		if len(buf) > 0 {
			carry[0] = buf[len(buf)-1]
			haveCarry = true
		}
		pos += n
	}

	return 0, false
}

// readFull reads exactly len(p) bytes at off, treating io.EOF on a
// short-but-complete read the same as any other ReaderAt implementation
// would (both image backends only return io.EOF when fewer bytes were
// copied than requested).
func readFull(img image.Image, p []byte, off int64) (int, error) {
	n, err := img.ReadAt(p, off)
	if err != nil && !(errors.Is(err, io.EOF) && n == len(p)) {
		return n, err
	}
	return n, nil
}
