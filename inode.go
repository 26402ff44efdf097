package jffs2

import (
	"encoding/binary"

	"github.com/NullPointerExeptionBruh/jffs2extract/codec"
)

// inodeFixedSize is the size of an inode fragment node's fixed portion
// (common header plus every field up to and including node_crc), before
// the variable-length compressed payload that follows it.
const inodeFixedSize = 68

// Inode is a decoded inode fragment node: a chunk of a file's content at
// logical Offset, already decompressed.
type Inode struct {
	Header

	Ino       uint32
	Version   uint32
	Mode      uint32
	Uid       uint16
	Gid       uint16
	Isize     uint32
	Atime     uint32
	Mtime     uint32
	Ctime     uint32
	Offset    uint32
	Csize     uint32
	Dsize     uint32
	Compr     codec.Tag
	Usercompr uint8
	Flags     Flags
	DataCRC   uint32
	NodeCRC   uint32

	Data []byte // decompressed payload; its length comes from the codec (see codec.Decompress)

	NodeCRCMatch bool
	DataCRCMatch bool
}

// parseInode decodes an inode fragment node body, including running its
// compressed payload through the codec layer. buf must start at the
// node's common header and contain at least totlen bytes.
func parseInode(buf []byte, totlen uint32) (Inode, error) {
	if uint32(len(buf)) < totlen || totlen < inodeFixedSize {
		return Inode{}, ErrShortBuffer
	}

	h, _ := peekHeader(buf)
	n := Inode{
		Header:    h,
		Ino:       binary.LittleEndian.Uint32(buf[12:16]),
		Version:   binary.LittleEndian.Uint32(buf[16:20]),
		Mode:      binary.LittleEndian.Uint32(buf[20:24]),
		Uid:       binary.LittleEndian.Uint16(buf[24:26]),
		Gid:       binary.LittleEndian.Uint16(buf[26:28]),
		Isize:     binary.LittleEndian.Uint32(buf[28:32]),
		Atime:     binary.LittleEndian.Uint32(buf[32:36]),
		Mtime:     binary.LittleEndian.Uint32(buf[36:40]),
		Ctime:     binary.LittleEndian.Uint32(buf[40:44]),
		Offset:    binary.LittleEndian.Uint32(buf[44:48]),
		Csize:     binary.LittleEndian.Uint32(buf[48:52]),
		Dsize:     binary.LittleEndian.Uint32(buf[52:56]),
		Compr:     codec.Tag(buf[56]),
		Usercompr: buf[57],
		Flags:     Flags(binary.LittleEndian.Uint16(buf[58:60])),
		DataCRC:   binary.LittleEndian.Uint32(buf[60:64]),
		NodeCRC:   binary.LittleEndian.Uint32(buf[64:68]),
	}

	payloadEnd := inodeFixedSize + uint64(n.Csize)
	if payloadEnd > uint64(totlen) || payloadEnd > uint64(len(buf)) {
		return Inode{}, ErrShortBuffer
	}
	payload := buf[inodeFixedSize:payloadEnd]

	n.NodeCRCMatch = mtdCRC32(buf[0:inodeFixedSize-8]) == n.NodeCRC
	n.DataCRCMatch = mtdCRC32(payload) == n.DataCRC

	n.Data = codec.Decompress(n.Compr, payload, int(n.Dsize))

	return n, nil
}
