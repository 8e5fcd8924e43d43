package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stayinn/stayinn-api/internal/config"
	"github.com/stayinn/stayinn-api/internal/domain/auth"
	"github.com/stayinn/stayinn-api/internal/domain/booking"
	"github.com/stayinn/stayinn-api/internal/domain/photo"
	"github.com/stayinn/stayinn-api/internal/domain/room"
	"github.com/stayinn/stayinn-api/internal/domain/user"
	"github.com/stayinn/stayinn-api/internal/middleware"
	"github.com/stayinn/stayinn-api/internal/pkg/database"
	"github.com/stayinn/stayinn-api/internal/pkg/imaging"
	"github.com/stayinn/stayinn-api/internal/pkg/jwt"
	"github.com/stayinn/stayinn-api/internal/pkg/response"
	"github.com/stayinn/stayinn-api/internal/pkg/storage"
)

// roomCheckerAdapter adapts room.Repository to photo.RoomChecker
type roomCheckerAdapter struct {
	rooms room.Repository
}

func (a *roomCheckerAdapter) RoomExists(ctx context.Context, roomID uuid.UUID) (bool, error) {
	rm, err := a.rooms.GetByID(ctx, roomID)
	if err != nil {
		return false, err
	}
	return rm != nil, nil
}

func main() {
	cfg := config.Load()

	setupLogger(cfg)

	// Database
	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.ClosePostgres(db)

	// Redis (optional, room list cache and token denylist)
	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
		redisClient = nil
	}
	if redisClient != nil {
		defer database.CloseRedis(redisClient)
	}

	// Photo storage
	store, err := buildStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize photo storage")
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// Repositories
	userRepo := user.NewRepository(db)
	tokenRepo := auth.NewRefreshTokenRepository(db)
	roomRepo := room.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	photoRepo := photo.NewRepository(db)

	// Services
	authService := auth.NewService(userRepo, tokenRepo, jwtService, redisClient)
	roomService := room.NewService(roomRepo, redisClient)
	bookingService := booking.NewService(bookingRepo, roomRepo, booking.NewSystemClock())
	photoService := photo.NewService(
		photoRepo,
		&roomCheckerAdapter{rooms: roomRepo},
		store,
		imaging.NewProcessor(imaging.DefaultConfig()),
		cfg.MaxUploadSizeMB*1024*1024,
	)

	// Handlers
	authHandler := auth.NewHandler(authService)
	roomHandler := room.NewHandler(roomService)
	bookingHandler := booking.NewHandler(bookingService)
	photoHandler := photo.NewHandler(photoService, cfg.MaxUploadSizeMB*1024*1024)

	authMw := middleware.Auth(jwtService)
	adminMw := middleware.RequireAdmin()

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})

	// Uploaded photos are served from disk when the local driver is active
	if cfg.StorageDriver == "local" {
		fs := http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.LocalStoragePath)))
		r.Get("/media/*", fs.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMw))
		r.Mount("/bookings", bookingHandler.Routes(authMw, adminMw))

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", roomHandler.List)
			r.Get("/available", bookingHandler.AvailableRooms)
			r.Get("/{id}", roomHandler.GetByID)
			r.Get("/{id}/photos", photoHandler.ListByRoom)

			r.Group(func(r chi.Router) {
				r.Use(authMw, adminMw)
				r.Post("/", roomHandler.Create)
				r.Put("/{id}", roomHandler.Update)
				r.Delete("/{id}", roomHandler.Delete)
				r.Post("/{id}/photos", photoHandler.Upload)
				r.Delete("/{id}/photos/{photoID}", photoHandler.Delete)
			})
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func buildStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case "r2":
		return storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		})
	case "local":
		return storage.NewLocalStorage(cfg.LocalStoragePath, cfg.LocalStorageURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
