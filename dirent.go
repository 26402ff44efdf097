package jffs2

import "encoding/binary"

// direntFixedSize is the size of a dirent node's fixed portion (common
// header plus pino/version/ino/mctime/nsize/type/reserved/node_crc/
// name_crc), before the variable-length name that follows it.
const direntFixedSize = 40

// Dirent is a decoded directory-entry node: it binds Name in directory
// Pino to target inode Ino.
type Dirent struct {
	Header

	Pino    uint32
	Version uint32
	Ino     uint32 // target inode; 0 means unlink
	Mctime  uint32
	Nsize   uint8
	Type    DType
	NodeCRC uint32
	NameCRC uint32
	Name    []byte

	NodeCRCMatch bool
	NameCRCMatch bool
}

// IsUnlink reports whether this dirent is a tombstone (ino == 0), which
// in JFFS2 represents deleting the name from its parent directory.
func (d Dirent) IsUnlink() bool { return d.Ino == 0 }

// parseDirent decodes a dirent node body. buf must start at the node's
// common header and contain at least totlen bytes.
func parseDirent(buf []byte, totlen uint32) (Dirent, error) {
	if uint32(len(buf)) < totlen || totlen < direntFixedSize {
		return Dirent{}, ErrShortBuffer
	}

	h, _ := peekHeader(buf)
	d := Dirent{
		Header:  h,
		Pino:    binary.LittleEndian.Uint32(buf[12:16]),
		Version: binary.LittleEndian.Uint32(buf[16:20]),
		Ino:     binary.LittleEndian.Uint32(buf[20:24]),
		Mctime:  binary.LittleEndian.Uint32(buf[24:28]),
		Nsize:   buf[28],
		Type:    DType(buf[29]),
		NodeCRC: binary.LittleEndian.Uint32(buf[32:36]),
		NameCRC: binary.LittleEndian.Uint32(buf[36:40]),
	}

	nameEnd := direntFixedSize + uint32(d.Nsize)
	if nameEnd > totlen || uint32(len(buf)) < nameEnd {
		return Dirent{}, ErrShortBuffer
	}
	d.Name = append([]byte(nil), buf[direntFixedSize:nameEnd]...)

	d.NodeCRCMatch = mtdCRC32(buf[0:direntFixedSize-8]) == d.NodeCRC
	d.NameCRCMatch = mtdCRC32(d.Name) == d.NameCRC

	return d, nil
}
