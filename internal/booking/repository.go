package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mlipatov/shareit-backend/internal/pkg/apperror"
)

type Repository interface {
	// Create inserts the booking. The overlap check runs in the same
	// transaction as the insert so concurrent creates cannot both claim
	// an interval.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	// UpdateStatus transitions the booking out of WAITING under a row lock;
	// fails if the booking was already decided.
	UpdateStatus(ctx context.Context, id int64, status Status) error
	// ListByItem returns every booking of the item ordered by start ascending.
	ListByItem(ctx context.Context, itemID int64) ([]*Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state State, now time.Time, limit, offset uint64) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state State, now time.Time, limit, offset uint64) ([]*Booking, error)
	// HasFinished reports whether the user has a non-rejected booking of the
	// item that ended before now.
	HasFinished(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const selectColumns = `
	b.id, b.item_id, i.name, i.owner_id, b.booker_id, u.name,
	b.start_time, b.end_time, b.status
`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID, &b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Re-check the interval inside the transaction. Any status counts as a
	// conflict, including REJECTED.
	const overlapQuery = `
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE item_id = $1 AND start_time <= $2 AND end_time >= $3
		)
	`
	var taken bool
	if err := tx.QueryRow(ctx, overlapQuery, b.ItemID, b.End, b.Start).Scan(&taken); err != nil {
		return fmt.Errorf("check overlap failed: %w", err)
	}
	if taken {
		return ErrIntervalTaken
	}

	const insertQuery = `
		INSERT INTO public.bookings (item_id, booker_id, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := tx.QueryRow(ctx, insertQuery, b.ItemID, b.BookerID, b.Start, b.End, b.Status).Scan(&b.ID); err != nil {
		return fmt.Errorf("insert booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM public.bookings b
		JOIN public.items i ON b.item_id = i.id
		JOIN public.users u ON b.booker_id = u.id
		WHERE b.id = $1
	`

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("booking", id)
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	var current Status
	err = tx.QueryRow(ctx, `SELECT status FROM public.bookings WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NotFound("booking", id)
		}
		return fmt.Errorf("lock booking failed: %w", err)
	}
	if current != StatusWaiting {
		return ErrAlreadyDecided
	}

	if _, err := tx.Exec(ctx, `UPDATE public.bookings SET status = $1 WHERE id = $2`, status, id); err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update booking tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListByItem(ctx context.Context, itemID int64) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.item_id", "i.name", "i.owner_id", "b.booker_id", "u.name",
		"b.start_time", "b.end_time", "b.status",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.item_id": itemID}).
		OrderBy("b.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	return r.queryMany(ctx, query, args)
}

// stateCond translates a state filter into the SQL condition matching
// State.Matches.
func stateCond(state State, now time.Time) squirrel.Sqlizer {
	switch state {
	case StateCurrent:
		return squirrel.And{
			squirrel.LtOrEq{"b.start_time": now},
			squirrel.GtOrEq{"b.end_time": now},
		}
	case StatePast:
		return squirrel.Lt{"b.end_time": now}
	case StateFuture:
		return squirrel.Gt{"b.start_time": now}
	case StateWaiting:
		return squirrel.Eq{"b.status": StatusWaiting}
	case StateRejected:
		return squirrel.Eq{"b.status": StatusRejected}
	default:
		return nil
	}
}

func (r *pgxRepository) ListByBooker(ctx context.Context, bookerID int64, state State, now time.Time, limit, offset uint64) ([]*Booking, error) {
	return r.listFiltered(ctx, squirrel.Eq{"b.booker_id": bookerID}, state, now, limit, offset)
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID int64, state State, now time.Time, limit, offset uint64) ([]*Booking, error) {
	return r.listFiltered(ctx, squirrel.Eq{"i.owner_id": ownerID}, state, now, limit, offset)
}

func (r *pgxRepository) listFiltered(ctx context.Context, scope squirrel.Sqlizer, state State, now time.Time, limit, offset uint64) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.item_id", "i.name", "i.owner_id", "b.booker_id", "u.name",
		"b.start_time", "b.end_time", "b.status",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id").
		Where(scope).
		OrderBy("b.start_time DESC")

	if cond := stateCond(state, now); cond != nil {
		query = query.Where(cond)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	return r.queryMany(ctx, sql, args)
}

func (r *pgxRepository) queryMany(ctx context.Context, sql string, args []any) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *pgxRepository) HasFinished(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE item_id = $1 AND booker_id = $2 AND end_time < $3 AND status <> $4
		)
	`

	var finished bool
	if err := r.pool.QueryRow(ctx, query, itemID, bookerID, now, StatusRejected).Scan(&finished); err != nil {
		return false, fmt.Errorf("check finished booking failed: %w", err)
	}
	return finished, nil
}
