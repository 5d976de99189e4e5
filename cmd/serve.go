package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/killallgit/labeler-api/api"
	"github.com/killallgit/labeler-api/api/types"
	"github.com/killallgit/labeler-api/internal/database"
	"github.com/killallgit/labeler-api/internal/services/dataset"
	"github.com/killallgit/labeler-api/internal/services/session"
	"github.com/killallgit/labeler-api/pkg/config"
	"github.com/killallgit/labeler-api/pkg/ffprobe"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the RTTM Labeler API server with the configured settings.

Example:
  labeler-api serve
  labeler-api serve --port 9090
  labeler-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	deps, db, err := buildDependencies(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	address := fmt.Sprintf("%s:%d", serverHost, serverPort)
	server := api.NewServer(address)
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("labeler-api listening on %s (library: %s)", address, cfg.Library.AudioDir)

	select {
	case <-stop:
		log.Println("shutting down")
	case err := <-serverErr:
		log.Println(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}

// buildDependencies wires the handler dependency graph from config. The
// database is optional: without one, exports still write files but no
// history is recorded.
func buildDependencies(cfg *config.Config) (*types.Dependencies, *database.DB, error) {
	deps := &types.Dependencies{
		Sessions:        session.NewManager(cfg.Labeling.SessionTTL),
		DefaultSpeakers: cfg.Labeling.DefaultSpeakers,
		Prober:          ffprobe.New(cfg.Processing.FFprobePath),
	}

	var db *database.DB
	var repository dataset.Repository
	if cfg.Database.Path != "" {
		var err error
		db, err = database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("migrating database: %w", err)
		}
		deps.DB = db
		repository = dataset.NewRepository(db.DB)
		deps.Exports = repository
	}

	storage, err := dataset.NewFilesystemStorage(cfg.Library.AudioDir, cfg.Library.DatasetDir)
	if err != nil {
		return nil, nil, fmt.Errorf("preparing dataset directories: %w", err)
	}
	deps.Dataset = dataset.NewService(storage, repository)

	if !deps.Prober.Available() {
		log.Println("ffprobe not found; sessions will rely on client-reported durations")
	}

	return deps, db, nil
}
