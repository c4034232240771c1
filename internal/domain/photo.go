package domain

import "time"

// Photo lives only embedded inside an item's photo list; there is no
// standalone photo document. IsCover is informational — the authoritative
// cover pointer is the owning item's CoverPhotoID.
type Photo struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"item_id"`
	FileName      string    `json:"file_name"`
	FilePath      string    `json:"file_path"`
	ThumbnailPath string    `json:"thumbnail_path,omitempty"`
	Order         int       `json:"order"`
	IsCover       bool      `json:"is_cover"`
	Width         *int      `json:"width,omitempty"`
	Height        *int      `json:"height,omitempty"`
	FileSize      int64     `json:"file_size"`
	UploadedAt    time.Time `json:"uploaded_at"`
	ModifiedAt    time.Time `json:"modified_at"`
}
