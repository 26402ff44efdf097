package jffs2

import "errors"

// Package-specific error variables that can be used with errors.Is() for error handling.
var (
	// ErrShortBuffer is returned when fewer bytes remain than a fixed-size
	// structure requires.
	ErrShortBuffer = errors.New("jffs2: buffer too short for node structure")

	// ErrHeaderCRC is returned when a common header's hdr_crc does not
	// match its first 8 bytes. The scanner treats this as a non-fatal
	// resync signal, never as a reason to abort.
	ErrHeaderCRC = errors.New("jffs2: header CRC mismatch")

	// ErrTotlenOutOfRange describes a node whose totlen would run past the
	// end of the image, or is smaller than the common header itself. The
	// scanner does not return it: it counts such a node as a resync and
	// moves on by one byte.
	ErrTotlenOutOfRange = errors.New("jffs2: node totlen out of range")

	// ErrUnsafePath is returned when a reconstructed path would escape the
	// output root via a parent reference or an absolute component.
	ErrUnsafePath = errors.New("jffs2: materialized path escapes output root")

	// ErrParentCycle describes a dirent whose parent chain exceeds the
	// cycle guard without reaching the root. resolvePath reports that case
	// as a false result rather than this error, and the materializer logs
	// and skips the entry.
	ErrParentCycle = errors.New("jffs2: parent inode chain did not resolve to root")

	// ErrNotDirectory is returned when the output root exists and is not a directory.
	ErrNotDirectory = errors.New("jffs2: output path exists and is not a directory")

	// ErrUnknownFileType is returned for dirent/inode combinations whose
	// mode bits are neither a directory, a regular file, nor a symlink.
	ErrUnknownFileType = errors.New("jffs2: unsupported file type, neither directory, regular file nor symlink")
)
