package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing comment data from storage.
type Repository interface {
	Create(ctx context.Context, c *Comment) error
	ListByItem(ctx context.Context, itemID int64) ([]Comment, error)
	ListByItems(ctx context.Context, itemIDs []int64) ([]Comment, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, c *Comment) error {
	const query = `
		INSERT INTO public.comments (item_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	if err := r.pool.QueryRow(ctx, query, c.ItemID, c.AuthorID, c.Text, c.Created).Scan(&c.ID); err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListByItem(ctx context.Context, itemID int64) ([]Comment, error) {
	return r.list(ctx, `c.item_id = $1`, itemID)
}

func (r *pgxRepository) ListByItems(ctx context.Context, itemIDs []int64) ([]Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, `c.item_id = ANY($1)`, itemIDs)
}

func (r *pgxRepository) list(ctx context.Context, cond string, arg any) ([]Comment, error) {
	query := `
		SELECT c.id, c.item_id, c.author_id, u.name, c.text, c.created_at
		FROM public.comments c
		JOIN public.users u ON c.author_id = u.id
		WHERE ` + cond + `
		ORDER BY c.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Text, &c.Created); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}
