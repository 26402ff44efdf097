package jffs2

import "strings"

// Flags is the raw 16-bit flags field of a JFFS2 inode fragment node.
type Flags uint16

const (
	// FlagPreread marks an inode that mount-time code should read
	// eagerly instead of lazily; it has no bearing on extraction but is
	// decoded for completeness and for diagnostic logging.
	FlagPreread Flags = 1 << iota
	FlagUsercompr
)

func (f Flags) String() string {
	var opt []string

	if f&FlagPreread != 0 {
		opt = append(opt, "PREREAD")
	}
	if f&FlagUsercompr != 0 {
		opt = append(opt, "USERCOMPR")
	}

	return strings.Join(opt, "|")
}

// Has reports whether all bits of what are set in f.
func (f Flags) Has(what Flags) bool {
	return f&what == what
}
