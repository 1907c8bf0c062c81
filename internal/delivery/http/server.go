package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/greencity/place-service/internal/config"
	"github.com/greencity/place-service/internal/delivery/http/handler"
	"github.com/greencity/place-service/internal/delivery/http/middleware"
)

// Server - fiber HTTP server for the place service
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	placeHandler    *handler.PlaceHandler
	favoriteHandler *handler.FavoriteHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	placeHandler *handler.PlaceHandler,
	favoriteHandler *handler.FavoriteHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "GreenCity Place Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		placeHandler:    placeHandler,
		favoriteHandler: favoriteHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Health check
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	auth := middleware.Auth(s.config.Auth.JWTSecret)
	moderator := middleware.RequireModerator()

	place := s.app.Group("/place")

	// Proposals and edits (authenticated)
	place.Post("/propose", auth, s.placeHandler.Propose)
	place.Put("/update", auth, s.placeHandler.Update)

	// Favorites (authenticated)
	place.Post("/save/favorite", auth, s.favoriteHandler.Save)
	place.Get("/favorite", auth, s.favoriteHandler.List)
	place.Delete("/favorite/:id", auth, s.favoriteHandler.Delete)
	place.Get("/info/favorite/:id", auth, s.favoriteHandler.GetInfo)

	// Public reads
	place.Get("/info/:id", s.placeHandler.GetInfo)
	place.Get("/about/:id", s.placeHandler.GetAbout)
	place.Get("/statuses", s.placeHandler.ListStatuses)
	place.Post("/getListPlaceLocationByMapsBounds", s.placeHandler.GetByMapBounds)
	place.Post("/filter", s.placeHandler.Filter)
	place.Post("/filter/predicate", s.placeHandler.FilterPredicate)

	// Moderation (moderator only)
	place.Patch("/status", auth, moderator, s.placeHandler.UpdateStatus)
	place.Patch("/statuses", auth, moderator, s.placeHandler.UpdateStatuses)
	place.Delete("/:id", auth, moderator, s.placeHandler.Delete)
	place.Delete("/", auth, moderator, s.placeHandler.BulkDelete)

	// Registered last so the catch-all status segment does not shadow
	// the fixed routes above.
	place.Get("/:status", auth, moderator, s.placeHandler.GetByStatus)
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the router for handler tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
