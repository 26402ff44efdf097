package codec

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// mkfs.jffs2's LZMA compressor always runs with lc=0, lp=0, pb=0 and an
// 8 KiB dictionary - there is no per-node properties byte to read, unlike
// the XZ container format. The properties byte packs as lc + lp*9 + pb*45,
// which collapses to 0 for this fixed configuration.
const (
	jffs2LzmaProps   = 0x00
	jffs2LzmaDictLen = 1 << 13
)

// lzmaDecompress feeds a raw JFFS2 LZMA chunk to ulikunitz/xz's classic
// LZMA decoder by prepending the 13-byte header that format expects
// (properties byte, little-endian dictionary size, little-endian
// uncompressed size) since JFFS2 itself carries no such header - the
// fixed properties and the caller-supplied dsize stand in for it.
func lzmaDecompress(input []byte, dsize int) ([]byte, error) {
	header := make([]byte, 13)
	header[0] = jffs2LzmaProps
	binary.LittleEndian.PutUint32(header[1:5], jffs2LzmaDictLen)
	binary.LittleEndian.PutUint64(header[5:13], uint64(dsize))

	stream := make([]byte, 0, len(header)+len(input))
	stream = append(stream, header...)
	stream = append(stream, input...)

	r, err := lzma.NewReader(bytes.NewReader(stream))
	if err != nil {
		return nil, err
	}

	out := make([]byte, dsize)
	n, err := io.ReadFull(r, out)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return out[:n], nil
}
