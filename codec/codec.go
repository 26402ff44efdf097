// Package codec implements the JFFS2 compression tag dispatch used to
// decompress inode fragment payloads.
package codec

import (
	"fmt"
	"log"
)

// Tag identifies the compression algorithm used for an inode fragment's
// payload, as stored in the one-byte compr field of a raw inode node.
type Tag uint8

const (
	None Tag = 0x00
	Zero Tag = 0x01
	ZLIB Tag = 0x06
	LZO  Tag = 0x07
	LZMA Tag = 0x08
)

func (t Tag) String() string {
	switch t {
	case None:
		return "NONE"
	case Zero:
		return "ZERO"
	case ZLIB:
		return "ZLIB"
	case LZO:
		return "LZO"
	case LZMA:
		return "LZMA"
	}
	return fmt.Sprintf("Tag(0x%02x)", uint8(t))
}

// Decompress dispatches to the decoder matching tag and returns the
// decoded payload. For None the input is returned unchanged and for ZLIB
// the length is whatever the stream inflates to; dsize sizes the Zero,
// LZO and LZMA output. It never fails: on any decode error, or an
// unrecognized tag, it logs a warning and substitutes dsize zero bytes so
// that the caller can keep assembling the rest of the file.
func Decompress(tag Tag, input []byte, dsize int) []byte {
	if dsize < 0 {
		dsize = 0
	}

	out, err := decompress(tag, input, dsize)
	if err != nil {
		log.Printf("jffs2: codec: %s decompress failed, zero-filling %d bytes: %s", tag, dsize, err)
		return make([]byte, dsize)
	}
	return out
}

func decompress(tag Tag, input []byte, dsize int) ([]byte, error) {
	switch tag {
	case None:
		return input, nil
	case Zero:
		return make([]byte, dsize), nil
	case ZLIB:
		return zlibDecompress(input, dsize)
	case LZO:
		return lzoDecompress(input, dsize)
	case LZMA:
		return lzmaDecompress(input, dsize)
	default:
		return nil, fmt.Errorf("unknown compression tag 0x%02x", uint8(tag))
	}
}
