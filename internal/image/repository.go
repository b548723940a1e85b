package image

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
)

// Repository defines methods for accessing image metadata from storage.
type Repository interface {
	Create(ctx context.Context, img *Image) error
	GetByID(ctx context.Context, id string) (*Image, error)
	ListByItem(ctx context.Context, itemID int64) ([]*Image, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func notFound(id string) *apperror.AppError {
	return apperror.New(http.StatusNotFound, fmt.Sprintf("image %s not found", id))
}

func (r *pgxRepository) Create(ctx context.Context, img *Image) error {
	const query = `
		INSERT INTO public.item_images
			(id, item_id, filename, storage_path, thumbnail_path, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		img.ID, img.ItemID, img.Filename, img.StoragePath,
		img.ThumbnailPath, img.ContentType, img.Size, img.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create image failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Image, error) {
	const query = `
		SELECT id, item_id, filename, storage_path, thumbnail_path, content_type, size_bytes, created_at
		FROM public.item_images
		WHERE id = $1
	`

	var img Image
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&img.ID, &img.ItemID, &img.Filename, &img.StoragePath,
		&img.ThumbnailPath, &img.ContentType, &img.Size, &img.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("get image failed: %w", err)
	}
	return &img, nil
}

func (r *pgxRepository) ListByItem(ctx context.Context, itemID int64) ([]*Image, error) {
	const query = `
		SELECT id, item_id, filename, storage_path, thumbnail_path, content_type, size_bytes, created_at
		FROM public.item_images
		WHERE item_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list images failed: %w", err)
	}
	defer rows.Close()

	var images []*Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(
			&img.ID, &img.ItemID, &img.Filename, &img.StoragePath,
			&img.ThumbnailPath, &img.ContentType, &img.Size, &img.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan image failed: %w", err)
		}
		images = append(images, &img)
	}

	return images, rows.Err()
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM public.item_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}
