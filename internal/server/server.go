package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secondchance/apiserver/config"
	"github.com/secondchance/apiserver/internal/auth"
	"github.com/secondchance/apiserver/internal/db"
	"github.com/secondchance/apiserver/internal/events"
	"github.com/secondchance/apiserver/internal/handlers"
	"github.com/secondchance/apiserver/internal/services"
	"github.com/secondchance/apiserver/internal/storage"
	"github.com/secondchance/apiserver/internal/store"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

// Server wraps the HTTP server, router and owned resources.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	database   *mongo.Database
	publisher  *events.Publisher
	logger     *zap.SugaredLogger
}

// New constructs a Server: one store connection, one signing key, every
// dependency passed by reference into the components that need it.
func New(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) (*Server, error) {
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	database, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open document store: %w", err)
	}

	publisher, err := events.NewPublisherFromConfig(ctx, cfg.Events)
	if err != nil {
		_ = db.Close(context.Background(), database)
		return nil, fmt.Errorf("configure events backend: %w", err)
	}

	images, err := storage.NewFromConfig(ctx, cfg.Storage)
	if err != nil {
		_ = db.Close(context.Background(), database)
		return nil, fmt.Errorf("configure storage backend: %w", err)
	}
	if images != nil {
		if err := images.EnsureBucket(ctx); err != nil {
			_ = db.Close(context.Background(), database)
			return nil, fmt.Errorf("ensure image bucket: %w", err)
		}
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := store.NewUserRepository(database)
	giftRepo := store.NewGiftRepository(database)

	userService := services.NewUserService(userRepo, tokens)
	giftService := services.NewGiftService(giftRepo, publisher, logger)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		requestLogger(logger),
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	handlers.AuthRouter(router, userService, tokens, logger)
	handlers.SearchRouter(router, giftService, logger)
	router.Route("/gifts", func(r chi.Router) {
		handlers.GiftRouter(r, giftService, images, logger)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 3060
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		database:   database,
		publisher:  publisher,
		logger:     logger,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.logger.Infow("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown releases owned resources and stops the HTTP server.
func (s *Server) Shutdown() error {
	if s.publisher != nil {
		_ = s.publisher.Close()
	}
	if s.database != nil {
		_ = db.Close(context.Background(), s.database)
	}
	return s.httpServer.Close()
}
