package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
)

// Repository defines methods for accessing item data from storage.
type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64, limit, offset uint64) ([]*Item, error)
	// Search matches available items whose name or description contains the
	// text, case-insensitively.
	Search(ctx context.Context, text string, limit, offset uint64) ([]*Item, error)
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*Item, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) Create(ctx context.Context, it *Item) error {
	query, args, err := psql.Insert("public.items").
		Columns("name", "description", "available", "owner_id", "request_id").
		Values(it.Name, it.Description, it.Available, it.OwnerID, it.RequestID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&it.ID); err != nil {
		return fmt.Errorf("create item failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Item, error) {
	query, args, err := psql.Select("id", "name", "description", "available", "owner_id", "request_id").
		From("public.items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item query failed: %w", err)
	}

	var it Item
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("item", id)
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return &it, nil
}

func (r *pgxRepository) Update(ctx context.Context, it *Item) error {
	query, args, err := psql.Update("public.items").
		Set("name", it.Name).
		Set("description", it.Description).
		Set("available", it.Available).
		Where(squirrel.Eq{"id": it.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperror.NotFound("item", it.ID)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("public.items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperror.NotFound("item", id)
	}
	return nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset uint64) ([]*Item, error) {
	query := psql.Select("id", "name", "description", "available", "owner_id", "request_id").
		From("public.items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id")

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items query failed: %w", err)
	}

	return r.queryMany(ctx, sql, args)
}

func (r *pgxRepository) Search(ctx context.Context, text string, limit, offset uint64) ([]*Item, error) {
	pattern := "%" + text + "%"
	query := psql.Select("id", "name", "description", "available", "owner_id", "request_id").
		From("public.items").
		Where(squirrel.Eq{"available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		}).
		OrderBy("id")

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search items query failed: %w", err)
	}

	return r.queryMany(ctx, sql, args)
}

func (r *pgxRepository) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*Item, error) {
	query, args, err := psql.Select("id", "name", "description", "available", "owner_id", "request_id").
		From("public.items").
		Where(squirrel.Eq{"request_id": requestIDs}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items by request query failed: %w", err)
	}

	return r.queryMany(ctx, query, args)
}

func (r *pgxRepository) queryMany(ctx context.Context, sql string, args []any) ([]*Item, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, &it)
	}

	return items, rows.Err()
}
