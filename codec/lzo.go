package codec

import "github.com/woozymasta/lzo"

// lzoDecompress runs a raw lzo1x_decompress with no header framing, as
// JFFS2 writes it: the caller already knows the exact decompressed size
// from the inode's dsize field.
func lzoDecompress(input []byte, dsize int) ([]byte, error) {
	return lzo.Decompress(input, &lzo.DecompressOptions{OutLen: dsize})
}
