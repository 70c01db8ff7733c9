package commands

import (
	"context"
	"time"

	"glaze-matrix-be/internal/config"
	"glaze-matrix-be/internal/pkg/logger"
	"glaze-matrix-be/internal/printer"
	"glaze-matrix-be/internal/repository/memory"
	"glaze-matrix-be/internal/service"
	"glaze-matrix-be/internal/storage"
	"glaze-matrix-be/pkg/matrix"

	"github.com/spf13/cobra"
)

var catalogPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "matrixctl",
	Short: "matrixctl - maintain the glaze compatibility matrix",
	Long: `matrixctl works on the same toggle-state store as the API server.

It reads the same environment (.env, DB_CONNECTION_STRING, TOGGLE_STATE_FILE_PATH,
CATALOG_PATH, MATRIX_BOUNDARY_COLUMN) and falls back to file storage the same way.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Catalog JSON (defaults to CATALOG_PATH)")
}

// session is everything a command needs to talk to the matrix
type session struct {
	cfg      *config.Config
	registry *matrix.Registry
	store    *storage.Store
	service  service.IMatrixService
	logger   logger.ILogger
}

func openSession(ctx context.Context) (*session, error) {
	cfg := config.Load()
	if catalogPath != "" {
		cfg.Matrix.CatalogPath = catalogPath
	}

	registry, err := matrix.LoadRegistryFile(cfg.Matrix.CatalogPath)
	if err != nil {
		return nil, printer.Error(
			"Failed to load catalog",
			err.Error(),
			[]string{"Pass --catalog <path>", "Set CATALOG_PATH in the environment"},
		)
	}

	// CLI output stays on the terminal; diagnostics go to the log file only
	log := logger.NewIsolatedLogger(cfg.App.LogFilePath)

	store := storage.Open(ctx, storage.Config{
		DSN:            cfg.Database.Connection,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		FilePath:       cfg.Matrix.ToggleStateFilePath,
	}, log)
	if reason := store.DemotionReason(); reason != nil {
		printer.Warning("Database unavailable, using %s\n", cfg.Matrix.ToggleStateFilePath)
	}

	svc := service.NewMatrixService(
		registry,
		store,
		memory.NewPreviewRepository(time.Minute),
		nil,
		log,
		cfg.Matrix.BoundaryColumn,
	)

	return &session{
		cfg:      cfg,
		registry: registry,
		store:    store,
		service:  svc,
		logger:   log,
	}, nil
}

func (s *session) Close() {
	_ = s.store.Close()
	_ = s.logger.Sync()
}
