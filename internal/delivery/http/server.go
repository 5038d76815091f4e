package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/gym-finder/internal/config"
	"github.com/gym-finder/internal/delivery/http/handler"
	"github.com/gym-finder/internal/delivery/http/middleware"
	"github.com/gym-finder/internal/observability"
	"github.com/gym-finder/internal/pkg/errors"
)

// Server - HTTP server on top of Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	screenHandler *handler.ScreenHandler
	metrics       *observability.DiscoveryCollector
}

// NewServer - builds the app, middlewares and routes
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	screenHandler *handler.ScreenHandler,
	metrics *observability.DiscoveryCollector,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Gym Finder",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Session.SearchTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		screenHandler: screenHandler,
		metrics:       metrics,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Get("/radius/validate", s.screenHandler.ValidateRadius)

	screens := api.Group("/screens")
	screens.Post("/", s.screenHandler.Open)
	screens.Get("/:id", s.screenHandler.Get)
	screens.Delete("/:id", s.screenHandler.Close)
	screens.Put("/:id/location", s.screenHandler.ReportLocation)
	screens.Put("/:id/radius", s.screenHandler.InputRadius)
	screens.Post("/:id/search", s.screenHandler.Search)
	screens.Post("/:id/retry", s.screenHandler.Retry)
	screens.Post("/:id/selection", s.screenHandler.Select)
	screens.Delete("/:id/selection", s.screenHandler.ClearSelection)
	screens.Post("/:id/list/toggle", s.screenHandler.ToggleList)
	screens.Get("/:id/places/:placeId", s.screenHandler.PlaceDetails)
}

// App exposes the Fiber app for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown of the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler renders unhandled errors (unknown routes, panics, body
// limits) in the same envelope as handler errors.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		appErr := errors.ErrInternalServer

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			appErr = errors.New("HTTP_ERROR", e.Message, e.Code)
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": appErr,
		})
	}
}
