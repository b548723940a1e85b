package image

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mlipatov/shareit-backend/internal/item"
	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
	"github.com/mlipatov/shareit-backend/internal/pkg/clock"
	"github.com/mlipatov/shareit-backend/internal/pkg/storage"
)

var ErrNotAnImage = apperror.New(http.StatusBadRequest, "uploaded file is not an image")

const maxUploadSize = 10 << 20 // 10 MiB

type Service interface {
	// Upload stores an item photo. Only the item owner may attach photos;
	// anyone else gets the same not-found as for a missing item.
	Upload(ctx context.Context, itemID, callerID int64, header *multipart.FileHeader) (*Image, error)
	ListByItem(ctx context.Context, itemID int64) ([]*Image, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Image, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Image, error)
	Delete(ctx context.Context, id string, callerID int64) error
}

type service struct {
	repo    Repository
	items   item.Service
	storage storage.Storage
	imgProc *storage.ImageProcessor
	clock   clock.Clock
}

func NewService(repo Repository, items item.Service, store storage.Storage, clk clock.Clock) Service {
	return &service{
		repo:    repo,
		items:   items,
		storage: store,
		imgProc: storage.NewImageProcessor(),
		clock:   clk,
	}
}

func (s *service) Upload(ctx context.Context, itemID, callerID int64, header *multipart.FileHeader) (*Image, error) {
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != callerID {
		return nil, apperror.NotFound("item", itemID)
	}

	if header.Size > maxUploadSize {
		return nil, apperror.FieldValidation("file", "image exceeds the size limit")
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffer the content; it is read twice (original + thumbnail).
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	imageID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))

	// Sharding path: items/ab/UUID.ext
	shard := imageID[:2]
	storagePath := fmt.Sprintf("items/%s/%s%s", shard, imageID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save image to storage: %w", err)
	}

	// Thumbnail is best effort; a failed rendition does not fail the upload.
	var thumbnailPath *string
	if thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), 200, 200); err == nil {
		tPath := fmt.Sprintf("items/%s/%s_thumb.jpg", shard, imageID)
		if err := s.storage.Save(ctx, tPath, thumbReader); err == nil {
			thumbnailPath = &tPath
		}
	}

	img := &Image{
		ID:            imageID,
		ItemID:        itemID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.repo.Create(ctx, img); err != nil {
		// Clean up the blobs when the metadata insert fails.
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return img, nil
}

func (s *service) ListByItem(ctx context.Context, itemID int64) ([]*Image, error) {
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.repo.ListByItem(ctx, itemID)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Image, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, img.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image content: %w", err)
	}
	return stream, img, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Image, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if img.ThumbnailPath == nil {
		return nil, nil, apperror.New(http.StatusNotFound, "image has no thumbnail")
	}

	stream, err := s.storage.Get(ctx, *img.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open thumbnail content: %w", err)
	}
	return stream, img, nil
}

func (s *service) Delete(ctx context.Context, id string, callerID int64) error {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	it, err := s.items.GetByID(ctx, img.ItemID)
	if err != nil {
		return err
	}
	if it.OwnerID != callerID {
		return apperror.NotFound("item", img.ItemID)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.storage.Delete(ctx, img.StoragePath)
	if img.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *img.ThumbnailPath)
	}
	return nil
}
