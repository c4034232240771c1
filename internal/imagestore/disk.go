// Package imagestore keeps photo bytes on the local filesystem, next to the
// document store rather than inside it. Paths handed back to callers are
// relative to the media root so the directory can be relocated.
package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"tripvault/internal/photo"
)

const thumbnailBound = 320

// Disk implements photo.ImageStorage under a single media root directory.
// Images are grouped per owning item; thumbnails sit beside the original.
type Disk struct {
	root string
}

func NewDisk(root string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root %s: %w", root, err)
	}
	return &Disk{root: root}, nil
}

// SaveImage decodes, writes the original, and renders a bounded thumbnail.
// Undecodable bytes are rejected rather than stored blind.
func (d *Disk) SaveImage(_ context.Context, ownerID, fileName string, data []byte) (photo.SavedImage, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return photo.SavedImage{}, fmt.Errorf("decode %s: %w", fileName, err)
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(fileName)))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.NewString() + ext
	relPath := filepath.Join(ownerID, name)
	relThumb := filepath.Join(ownerID, "thumb_"+name)

	dir := filepath.Join(d.root, ownerID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return photo.SavedImage{}, fmt.Errorf("create image dir %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(d.root, relPath), data, 0o644); err != nil {
		return photo.SavedImage{}, fmt.Errorf("write image %s: %w", relPath, err)
	}

	thumb := imaging.Fit(img, thumbnailBound, thumbnailBound, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(d.root, relThumb)); err != nil {
		_ = os.Remove(filepath.Join(d.root, relPath))
		return photo.SavedImage{}, fmt.Errorf("write thumbnail %s: %w", relThumb, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	return photo.SavedImage{
		Path:          relPath,
		ThumbnailPath: relThumb,
		Width:         &width,
		Height:        &height,
		Size:          int64(len(data)),
	}, nil
}

// DeleteImage removes the original and its thumbnail. Missing files are fine.
func (d *Disk) DeleteImage(_ context.Context, path, thumbnailPath string) error {
	for _, rel := range []string{path, thumbnailPath} {
		if rel == "" {
			continue
		}
		abs, err := d.resolve(rel)
		if err != nil {
			return err
		}
		if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", rel, err)
		}
	}
	return nil
}

// LoadImage reads stored bytes by relative path.
func (d *Disk) LoadImage(_ context.Context, path string) ([]byte, error) {
	abs, err := d.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return data, nil
}

// resolve joins a stored relative path to the root, refusing anything that
// escapes it.
func (d *Disk) resolve(rel string) (string, error) {
	abs := filepath.Join(d.root, rel)
	if !strings.HasPrefix(filepath.Clean(abs), filepath.Clean(d.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %s escapes media root", rel)
	}
	return abs, nil
}
