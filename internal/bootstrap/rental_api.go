package bootstrap

import (
	"strings"

	"rental_server/adapter/in/http"
	"rental_server/config"
	"rental_server/infra/middleware"
	"rental_server/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func NewAPI(cfg *config.Config) (*fiber.App, func(), error) {
	logLevel := logger.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = logger.LevelDebug
	}
	logger.Init(logger.Config{
		Level:   logLevel,
		Service: "rental-api",
	})

	deps, cleanup, err := NewDependencies(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize dependencies")
		return nil, nil, err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: cfg.IsProduction(),

		ReadBufferSize:  16384,
		WriteBufferSize: 16384,

		// go-json is a drop-in replacement, roughly 2-3x faster than
		// encoding/json on these payloads
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,

		// Image uploads go through multipart; cap the body accordingly
		BodyLimit: 25 * 1024 * 1024,
	})

	// Global middleware stack (order matters)
	app.Use(middleware.Recover())
	app.Use(middleware.RequestID())
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.RequestLogger())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// CORS. AllowCredentials requires explicit origins, never "*".
	allowOrigins := strings.Join(cfg.AllowedOrigins, ",")
	allowCredentials := true
	if allowOrigins == "" || allowOrigins == "*" {
		if cfg.IsProduction() {
			allowOrigins = ""
			allowCredentials = false
		} else {
			allowOrigins = "http://localhost:3000,http://localhost:5173"
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		ExposeHeaders:    "X-Request-ID,X-RateLimit-Limit,X-RateLimit-Remaining,X-RateLimit-Reset",
		AllowCredentials: allowCredentials,
		MaxAge:           86400,
	}))

	// Health probes (no auth)
	healthHandler := http.NewHealthHandler(deps.DB, deps.Redis)
	healthHandler.Register(app)

	// Session middleware shared by the route groups
	authMW := middleware.NewAuthMiddleware(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, deps.UserRepo)
	requireAuth := authMW.RequireAuth()
	requireRefresh := authMW.RequireRefresh()
	requireAdmin := authMW.RequireAdmin()

	// Brute-force guard for the credential endpoints
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow).Handler()

	api := app.Group("/api/v1")

	http.NewAuthHandler(deps.AuthService).Register(api, requireAuth, requireRefresh, authLimiter)
	http.NewUserHandler(deps.UserService).Register(api, requireAuth, requireAdmin)
	http.NewCarHandler(deps.CarService).Register(api, requireAuth, requireAdmin)
	http.NewAccommodationHandler(deps.AccommodationService).Register(api, requireAuth, requireAdmin)
	http.NewCommentHandler(deps.CommentService).Register(api, requireAuth)
	http.NewReserveHandler(deps.ReservationService).Register(api, requireAuth)
	http.NewProfileHandler(deps.ProfileService).Register(api, requireAuth)
	http.NewPaymentHandler(deps.PaymentService).Register(api, requireAuth)
	http.NewTermHandler(deps.TermService).Register(api, requireAuth)

	logger.Info("API server initialized successfully")

	return app, cleanup, nil
}
