package bootstrap

import (
	"context"
	"fmt"

	"glaze-matrix-be/internal/config"
	"glaze-matrix-be/internal/controller"
	"glaze-matrix-be/internal/pkg/logger"
	"glaze-matrix-be/internal/repository/memory"
	"glaze-matrix-be/internal/service"
	"glaze-matrix-be/internal/storage"
	"glaze-matrix-be/pkg/matrix"

	pktNats "glaze-matrix-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const matrixEventsTopic = "matrix.events"

type Container struct {
	// Controllers
	MatrixController controller.IMatrixController

	// Background Services (Exposed for main.go to run)
	AuditConsumerService service.IAuditConsumerService

	Logger   logger.ILogger
	Store    *storage.Store
	Registry *matrix.Registry

	natsPub     *pktNats.Publisher
	pubSub      *gochannel.GoChannel
	auditLogger logger.ILogger
}

// NewContainer loads the catalog, opens the toggle-state store and wires every component.
// Only an unreadable catalog is fatal; storage always comes up (falling back to the file).
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	registry, err := matrix.LoadRegistryFile(cfg.Matrix.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.Matrix.CatalogPath, err)
	}
	sysLogger.Info("BOOTSTRAP", "Catalog loaded", map[string]interface{}{
		"path":        cfg.Matrix.CatalogPath,
		"glazes":      len(registry.Glazes),
		"underglazes": len(registry.Underglazes),
	})

	store := storage.Open(ctx, storage.Config{
		DSN:            cfg.Database.Connection,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		FilePath:       cfg.Matrix.ToggleStateFilePath,
	}, sysLogger)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	var sink service.EventSink
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS Publisher", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			sink = natsPub
		}
	}

	// 3. Services
	publisherService := service.NewPublisherService(matrixEventsTopic, pubSub, sink, sysLogger)
	auditConsumer := service.NewAuditConsumerService(pubSub, matrixEventsTopic, auditLogger)

	matrixService := service.NewMatrixService(
		registry,
		store,
		memory.NewPreviewRepository(cfg.Matrix.ReconcilePreviewTTL),
		publisherService,
		sysLogger,
		cfg.Matrix.BoundaryColumn,
	)

	// 4. Controllers
	return &Container{
		MatrixController:     controller.NewMatrixController(matrixService),
		AuditConsumerService: auditConsumer,
		Logger:               sysLogger,
		Store:                store,
		Registry:             registry,
		natsPub:              natsPub,
		pubSub:               pubSub,
		auditLogger:          auditLogger,
	}, nil
}

// Close releases resources in reverse wiring order
func (c *Container) Close() error {
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if err := c.pubSub.Close(); err != nil {
		c.Logger.Warn("BOOTSTRAP", "Failed to close event bus", map[string]interface{}{"error": err.Error()})
	}
	err := c.Store.Close()
	_ = c.auditLogger.Sync()
	_ = c.Logger.Sync()
	return err
}
