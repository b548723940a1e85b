package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mlipatov/shareit-backend/internal/booking"
	bookingHttp "github.com/mlipatov/shareit-backend/internal/booking/http"
	"github.com/mlipatov/shareit-backend/internal/identity"
	"github.com/mlipatov/shareit-backend/internal/image"
	imageHttp "github.com/mlipatov/shareit-backend/internal/image/http"
	"github.com/mlipatov/shareit-backend/internal/item"
	itemHttp "github.com/mlipatov/shareit-backend/internal/item/http"
	"github.com/mlipatov/shareit-backend/internal/itemrequest"
	requestHttp "github.com/mlipatov/shareit-backend/internal/itemrequest/http"
	"github.com/mlipatov/shareit-backend/internal/user"
	userHttp "github.com/mlipatov/shareit-backend/internal/user/http"
)

// Config holds the services the router wires into HTTP handlers.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
	RequestService itemrequest.Service
	ImageService   image.Service
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, identity) and registers routes for
// all modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Logger logs request information to the console; Recovery captures
	// panics and returns a 500 instead of crashing the server.
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", identity.Header}
	r.Use(cors.New(corsConfig))

	required := identity.Required()
	optional := identity.Optional()

	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)
	imageHandler := imageHttp.NewHandler(cfg.ImageService)

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, userHandler)
		itemHttp.RegisterRoutes(root, itemHandler, required, optional)
		bookingHttp.RegisterRoutes(root, bookingHandler, required)
		requestHttp.RegisterRoutes(root, requestHandler, required)
		imageHttp.RegisterRoutes(root, imageHandler, required)
	}

	return r
}
