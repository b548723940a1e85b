package itemrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
)

// Repository defines methods for accessing item-request data from storage.
type Repository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id int64) (*Request, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ListByRequestor(ctx context.Context, requestorID int64) ([]*Request, error)
	ListByOtherRequestors(ctx context.Context, requestorID int64, limit, offset uint64) ([]*Request, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) Create(ctx context.Context, req *Request) error {
	const query = `
		INSERT INTO public.item_requests (description, requestor_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := r.pool.QueryRow(ctx, query, req.Description, req.RequestorID, req.Created).Scan(&req.ID); err != nil {
		return fmt.Errorf("create item request failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Request, error) {
	const query = `
		SELECT id, description, requestor_id, created_at
		FROM public.item_requests
		WHERE id = $1
	`

	var req Request
	if err := r.pool.QueryRow(ctx, query, id).Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("request", id)
		}
		return nil, fmt.Errorf("get item request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM public.item_requests WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check item request failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) ListByRequestor(ctx context.Context, requestorID int64) ([]*Request, error) {
	return r.list(ctx, squirrel.Eq{"requestor_id": requestorID}, 0, 0)
}

func (r *pgxRepository) ListByOtherRequestors(ctx context.Context, requestorID int64, limit, offset uint64) ([]*Request, error) {
	return r.list(ctx, squirrel.NotEq{"requestor_id": requestorID}, limit, offset)
}

func (r *pgxRepository) list(ctx context.Context, cond squirrel.Sqlizer, limit, offset uint64) ([]*Request, error) {
	query := psql.Select("id", "description", "requestor_id", "created_at").
		From("public.item_requests").
		Where(cond).
		OrderBy("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list item requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list item requests failed: %w", err)
	}
	defer rows.Close()

	var requests []*Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
			return nil, fmt.Errorf("scan item request failed: %w", err)
		}
		requests = append(requests, &req)
	}

	return requests, rows.Err()
}
