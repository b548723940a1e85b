package http

import (
	"time"

	"github.com/mlipatov/shareit-backend/internal/image"
)

type ImageResponse struct {
	ID           string    `json:"id"`
	ItemID       int64     `json:"itemId"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewImageResponse(img *image.Image) ImageResponse {
	resp := ImageResponse{
		ID:          img.ID,
		ItemID:      img.ItemID,
		Filename:    img.Filename,
		ContentType: img.ContentType,
		Size:        img.Size,
		URL:         image.URL(img.ID),
		CreatedAt:   img.CreatedAt,
	}
	if img.ThumbnailPath != nil {
		u := image.ThumbnailURL(img.ID)
		resp.ThumbnailURL = &u
	}
	return resp
}
