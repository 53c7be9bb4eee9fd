package main

import (
	"alcyxob/workout-tracker/internal/api"
	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/repository/local"
	mongoRepo "alcyxob/workout-tracker/internal/repository/mongo"
	"alcyxob/workout-tracker/internal/service"
	"alcyxob/workout-tracker/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Info("Starting Workout Tracker Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}
	log.Info("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongoRepo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.WithError(err).Fatal("could not connect to MongoDB")
	}
	defer func() {
		log.Info("Disconnecting MongoDB...")
		if err := mongoRepo.DisconnectDB(dbClient); err != nil {
			log.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := mongoRepo.EnsureUserIndexes(ctx, appDB.Collection("users")); err != nil {
			log.WithError(err).Warn("failed to create user indexes")
		}
		if err := mongoRepo.EnsureSessionIndexes(ctx, appDB.Collection("sessions")); err != nil {
			log.WithError(err).Warn("failed to create session indexes")
		}
	}()

	// --- Initialize Storage ---
	// Archive storage is optional; without S3 config the export endpoint
	// reports itself unavailable.
	var archive storage.ArchiveStorage
	if cfg.S3.BucketName != "" {
		archive, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize S3 archive storage")
		}
	} else {
		log.Info("No S3 bucket configured; history export disabled.")
	}

	demoBucket := storage.NewFileBucket(cfg.Ephemeral.Dir, cfg.Ephemeral.Bucket)

	// --- Initialize Repositories ---
	userRepo := mongoRepo.NewMongoUserRepository(appDB)
	durableRepo := mongoRepo.NewMongoSessionRepository(appDB)
	ephemeralRepo := local.NewLocalSessionStore(demoBucket)

	// --- Initialize Services ---
	migrationService := service.NewMigrationService(ephemeralRepo, durableRepo)
	trackingService := service.NewTrackingService(ephemeralRepo, durableRepo, archive)
	authService := service.NewAuthService(userRepo, migrationService, cfg.JWT.Secret, cfg.JWT.Expiration)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret, authService, trackingService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.WithField("address", cfg.Server.Address).Info("Server starting")

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("ListenAndServe error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exiting.")
}
