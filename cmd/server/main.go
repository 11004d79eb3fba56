package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitcoach/coach-app/internal/api"
	"fitcoach/coach-app/internal/config"
	"fitcoach/coach-app/internal/gateway"
	"fitcoach/coach-app/internal/service"
	"fitcoach/coach-app/internal/storage"
	"fitcoach/coach-app/internal/store"
	storemongo "fitcoach/coach-app/internal/store/mongo"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting FitCoach server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- State Store ---
	stateStore, cleanup, err := buildStateStore(cfg.State)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize state store: %v", err)
	}
	defer cleanup()
	log.Printf("State store initialized (backend: %s).", cfg.State.Backend)

	// --- Plan Generation Gateway ---
	planGateway := gateway.NewOpenAIGateway(cfg.AI)

	// --- Services ---
	log.Println("Initializing services...")
	coachService, err := service.NewCoachService(context.Background(), stateStore, planGateway)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize coach service: %v", err)
	}

	var snapshotStorage storage.SnapshotStorage
	if cfg.Backup.Enabled {
		snapshotStorage, err = storage.NewS3Storage(cfg.Backup)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 snapshot storage: %v", err)
		}
	}
	backupService := service.NewBackupService(coachService, snapshotStorage)

	// A restart with an onboarded profile and no stored plan gets its plan
	// back without re-onboarding. Runs in the background so startup is not
	// held hostage by the model.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := coachService.RegenerateIfMissing(ctx); err != nil &&
			!errors.Is(err, service.ErrNotOnboarded) {
			log.Printf("ERROR: Startup plan regeneration failed: %v", err)
		}
	}()

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, coachService, backupService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second, // plan generation can take a while
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

// buildStateStore selects the persistence backend from config. The returned
// cleanup disconnects whatever the backend holds open.
func buildStateStore(cfg config.StateConfig) (store.StateStore, func(), error) {
	switch cfg.Backend {
	case "mongo":
		client, err := storemongo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			log.Println("Disconnecting MongoDB...")
			if err := storemongo.DisconnectDB(client); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}
		return storemongo.NewMongoStateStore(client.Database(cfg.Database)), cleanup, nil
	case "memory":
		return store.NewMemoryStore(), func() {}, nil
	default:
		fileStore, err := store.NewFileStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return fileStore, func() {}, nil
	}
}
