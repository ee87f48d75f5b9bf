package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"elite/internal/api"
	"elite/internal/api/middleware"
	"elite/internal/config"
	"elite/internal/database"
	"elite/internal/exercise"
	"elite/internal/health"
	"elite/internal/pushups"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
)

const (
	readTimeout       = 15 * time.Second
	writeTimeout      = 15 * time.Second
	serverIdleTimeout = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
	bootstrapTimeout  = 30 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, err := setupLogging(cfg.LogFilePath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := logFile.Close(); closeErr != nil {
			log.Printf("Failed to close log file: %v", closeErr)
		}
	}()
	log.Println("Logging initialized. Log file:", logFile.Name())

	db, err := database.Connect(cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database connection: %v", err)
		}
	}()
	log.Printf("Database target: %s", cfg.DB.Redacted())

	// A store that is down at startup must not stop the process; /health/db
	// reports it until the database comes back.
	if cfg.Bootstrap {
		bctx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
		if err := db.Bootstrap(bctx, cfg.Variant); err != nil {
			log.Printf("Schema bootstrap failed: %v", err)
		} else {
			log.Printf("Schema ready for variant %q", cfg.Variant)
		}
		cancel()
	}

	return startServer(ctx, cfg.Port, newHandler(cfg, db))
}

func registerHandlers(r *mux.Router, cfg *config.Config, db *database.Provider) {
	health.RegisterHandlers(r, db)
	api.RegisterDocsHandlers(r)

	switch cfg.Variant {
	case config.VariantExercise:
		exercise.RegisterHandlers(r, exercise.NewPGStore(db), cfg.DefaultUserID)
	default:
		pushups.RegisterHandlers(r, pushups.NewPGStore(db), cfg.DefaultUserID)
	}
}

// newHandler wraps the router so CORS preflights are answered even for
// routes that only accept GET or POST.
func newHandler(cfg *config.Config, db *database.Provider) http.Handler {
	r := mux.NewRouter()
	registerHandlers(r, cfg, db)

	var h http.Handler = r
	h = middleware.Recover(h)
	h = middleware.CORS(cfg.CORSOrigins)(h)
	h = middleware.AccessLog(h)
	h = middleware.RequestID(h)
	return h
}

func startServer(ctx context.Context, port string, handler http.Handler) error {
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
