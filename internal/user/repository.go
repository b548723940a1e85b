package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
)

// Repository defines methods for accessing user data from storage.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, u *User) error {
	const query = `
		INSERT INTO public.users (name, email)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := r.pool.QueryRow(ctx, query, u.Name, u.Email).Scan(&u.ID); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrEmailInUse
		}
		return fmt.Errorf("create user failed: %w", err)
	}

	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	const query = `
		SELECT id, name, email
		FROM public.users
		WHERE id = $1
	`

	var u User
	if err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	return &u, nil
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT id, name, email
		FROM public.users
		WHERE email = $1
	`

	var u User
	if err := r.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("user", 0)
		}
		return nil, fmt.Errorf("get user by email failed: %w", err)
	}
	return &u, nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*User, error) {
	const query = `
		SELECT id, name, email
		FROM public.users
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users failed: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("scan user failed: %w", err)
		}
		users = append(users, &u)
	}

	return users, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, u *User) error {
	const query = `
		UPDATE public.users
		SET name = $1, email = $2
		WHERE id = $3
	`

	ct, err := r.pool.Exec(ctx, query, u.Name, u.Email, u.ID)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrEmailInUse
		}
		return fmt.Errorf("update user failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperror.NotFound("user", u.ID)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	const query = `
		DELETE FROM public.users
		WHERE id = $1
	`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperror.NotFound("user", id)
	}
	return nil
}
