package jffs2

import "io/fs"

// JFFS2 stores mode as a raw POSIX mode_t (linux layout), so decode it by
// hand rather than relying on any host-specific stat bits.
// based on: https://golang.org/src/os/stat_linux.go
const (
	sIFMT   = 0xf000
	sIFREG  = 0x8000
	sIFDIR  = 0x4000
	sIFBLK  = 0x6000
	sIFCHR  = 0x2000
	sIFIFO  = 0x1000
	sIFLNK  = 0xa000
	sIFSOCK = 0xc000
)

// IsDir, IsRegular and IsSymlink classify a raw JFFS2 inode mode word by
// its S_IFMT bits, the same test used by the C library's S_ISDIR/S_ISREG/
// S_ISLNK macros the original unpacker relies on.
func IsDir(mode uint32) bool     { return mode&sIFMT == sIFDIR }
func IsRegular(mode uint32) bool { return mode&sIFMT == sIFREG }
func IsSymlink(mode uint32) bool { return mode&sIFMT == sIFLNK }

// Perm converts the low 12 permission bits (rwxrwxrwx + setuid/setgid/
// sticky) to an fs.FileMode to apply to a materialized regular file.
// Directories are not given these bits; they are created with 0755.
func Perm(mode uint32) fs.FileMode {
	perm := fs.FileMode(mode & 0777)
	if mode&04000 != 0 {
		perm |= fs.ModeSetuid
	}
	if mode&02000 != 0 {
		perm |= fs.ModeSetgid
	}
	if mode&01000 != 0 {
		perm |= fs.ModeSticky
	}
	return perm
}

// UnixToMode converts a raw JFFS2 mode word to an fs.FileMode, used only
// for log messages describing an unsupported file type (fifo, device,
// socket) - the materializer itself dispatches on IsDir/IsRegular/
// IsSymlink directly against the raw bits rather than through fs.FileMode.
func UnixToMode(mode uint32) fs.FileMode {
	res := fs.FileMode(mode & 0777)

	switch mode & sIFMT {
	case sIFCHR:
		res |= fs.ModeCharDevice
	case sIFBLK:
		res |= fs.ModeDevice
	case sIFDIR:
		res |= fs.ModeDir
	case sIFIFO:
		res |= fs.ModeNamedPipe
	case sIFLNK:
		res |= fs.ModeSymlink
	case sIFSOCK:
		res |= fs.ModeSocket
	}

	return res
}

// DType is the POSIX-style directory entry type byte stored in a dirent
// node's type field (values match Linux's <dirent.h> DT_* constants).
type DType uint8

const (
	DTUnknown DType = 0
	DTFifo    DType = 1
	DTChr     DType = 2
	DTDir     DType = 4
	DTBlk     DType = 6
	DTReg     DType = 8
	DTLnk     DType = 10
	DTSock    DType = 12
)

func (t DType) String() string {
	switch t {
	case DTFifo:
		return "FIFO"
	case DTChr:
		return "CHR"
	case DTDir:
		return "DIR"
	case DTBlk:
		return "BLK"
	case DTReg:
		return "REG"
	case DTLnk:
		return "LNK"
	case DTSock:
		return "SOCK"
	default:
		return "UNKNOWN"
	}
}

// IsRegular reports whether the dirent type nibble indicates a regular
// file - consulted when a dirent has no inode fragments at all, to decide
// whether to materialize an empty regular file or skip the entry.
func (t DType) IsRegular() bool { return t == DTReg }
