package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mlipatov/shareit-backend/internal/api"
	"github.com/mlipatov/shareit-backend/internal/booking"
	"github.com/mlipatov/shareit-backend/internal/comment"
	"github.com/mlipatov/shareit-backend/internal/image"
	"github.com/mlipatov/shareit-backend/internal/item"
	"github.com/mlipatov/shareit-backend/internal/itemrequest"
	"github.com/mlipatov/shareit-backend/internal/pkg/clock"
	"github.com/mlipatov/shareit-backend/internal/pkg/storage"
	"github.com/mlipatov/shareit-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Storage      storage.Storage
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	clk := clock.System()

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Repositories the item module reads through directory adapters. The
	// adapters wrap repositories rather than services so the item, booking
	// and request modules can depend on each other without a cycle.
	commentRepo := comment.NewPgxRepository(cfg.DBPool)
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)

	// Item Module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	itemService := item.NewService(
		itemRepo,
		userService,
		commentRepo,
		&bookingDirectory{repo: bookingRepo},
		&requestDirectory{repo: requestRepo},
		clk,
	)

	// Booking Module
	bookingService := booking.NewService(bookingRepo, itemService, userService, clk)

	// ItemRequest Module
	requestService := itemrequest.NewService(requestRepo, itemService, userService, clk)

	// Image Module
	imageRepo := image.NewPgxRepository(cfg.DBPool)
	imageService := image.NewService(imageRepo, itemService, cfg.Storage, clk)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
		RequestService: requestService,
		ImageService:   imageService,
	}

	return &Container{
		Router: api.NewRouter(routerParams),
	}
}

// bookingDirectory exposes the booking repository to the item module as its
// schedule source.
type bookingDirectory struct {
	repo booking.Repository
}

func (d *bookingDirectory) ItemSchedule(ctx context.Context, itemID int64, now time.Time) (last, next *item.BookingShort, err error) {
	bookings, err := d.repo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	return toShort(booking.Last(bookings, now)), toShort(booking.Next(bookings, now)), nil
}

func (d *bookingDirectory) HasFinished(ctx context.Context, itemID, userID int64, now time.Time) (bool, error) {
	return d.repo.HasFinished(ctx, itemID, userID, now)
}

func toShort(b *booking.Booking) *item.BookingShort {
	if b == nil {
		return nil
	}
	return &item.BookingShort{ID: b.ID, BookerID: b.BookerID}
}

// requestDirectory lets the item module verify request references without
// depending on the itemrequest service.
type requestDirectory struct {
	repo itemrequest.Repository
}

func (d *requestDirectory) Exists(ctx context.Context, id int64) (bool, error) {
	return d.repo.Exists(ctx, id)
}
