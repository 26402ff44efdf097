package codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// zlibDecompress inflates a standard zlib stream. The expected output size
// is not enforced against dsize: the library-reported length is trusted,
// matching spec's "trust library-reported output length".
func zlibDecompress(input []byte, dsize int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
