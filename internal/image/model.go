package image

import "time"

// Image is a photo attached to an item. The binary lives in blob storage;
// this row holds the metadata and storage paths.
type Image struct {
	ID            string // UUID
	ItemID        int64
	Filename      string
	StoragePath   string  // internal, never exposed
	ThumbnailPath *string // internal, never exposed
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// URL returns the public URL for the original image.
func URL(id string) string {
	return "/images/" + id
}

// ThumbnailURL returns the public URL for the image thumbnail.
func ThumbnailURL(id string) string {
	return "/images/" + id + "/thumbnail"
}
