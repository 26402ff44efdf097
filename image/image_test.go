package image_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NullPointerExeptionBruh/jffs2extract/image"
)

func TestOpenHeapBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.bin")
	data := []byte("0123456789abcdef")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	img, err := image.Open(path)
	require.NoError(t, err)
	defer img.Close()

	assert.Equal(t, int64(len(data)), img.Len())

	buf := make([]byte, 4)
	n, err := img.ReadAt(buf, 6)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("6789"), buf)
}

func TestOpenForcesMmapBelowSmallThreshold(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.bin")
	data := []byte("mmap-backed-data-for-test-purposes")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	img, err := image.Open(path, image.WithMmapThreshold(1))
	require.NoError(t, err)
	defer img.Close()

	assert.Equal(t, int64(len(data)), img.Len())

	buf := make([]byte, 5)
	n, err := img.ReadAt(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("mmap-"), buf)
}

func TestFromBytes(t *testing.T) {
	img := image.FromBytes([]byte("abc"))
	defer img.Close()
	assert.Equal(t, int64(3), img.Len())
}
