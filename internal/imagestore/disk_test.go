package imagestore

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveImage(t *testing.T) {
	disk, err := NewDisk(t.TempDir())
	require.NoError(t, err)

	saved, err := disk.SaveImage(context.Background(), "item-1", "shot.png", pngBytes(t, 640, 480))
	require.NoError(t, err)

	require.NotNil(t, saved.Width)
	require.NotNil(t, saved.Height)
	assert.Equal(t, 640, *saved.Width)
	assert.Equal(t, 480, *saved.Height)
	assert.Equal(t, "item-1", filepath.Dir(saved.Path))
	assert.Equal(t, ".png", filepath.Ext(saved.Path))
	assert.NotEmpty(t, saved.ThumbnailPath)

	loaded, err := disk.LoadImage(context.Background(), saved.Path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(loaded)), saved.Size)

	_, err = disk.LoadImage(context.Background(), saved.ThumbnailPath)
	assert.NoError(t, err, "thumbnail is written beside the original")
}

func TestSaveImageRejectsNonImage(t *testing.T) {
	disk, err := NewDisk(t.TempDir())
	require.NoError(t, err)

	_, err = disk.SaveImage(context.Background(), "item-1", "notes.txt", []byte("plain text"))
	assert.Error(t, err)
}

func TestDeleteImage(t *testing.T) {
	root := t.TempDir()
	disk, err := NewDisk(root)
	require.NoError(t, err)

	saved, err := disk.SaveImage(context.Background(), "item-1", "shot.png", pngBytes(t, 10, 10))
	require.NoError(t, err)

	require.NoError(t, disk.DeleteImage(context.Background(), saved.Path, saved.ThumbnailPath))
	_, err = os.Stat(filepath.Join(root, saved.Path))
	assert.True(t, os.IsNotExist(err))

	// deleting again is a no-op
	assert.NoError(t, disk.DeleteImage(context.Background(), saved.Path, saved.ThumbnailPath))
}

func TestLoadImageRefusesEscape(t *testing.T) {
	disk, err := NewDisk(t.TempDir())
	require.NoError(t, err)

	_, err = disk.LoadImage(context.Background(), "../../etc/passwd")
	assert.Error(t, err)
}
