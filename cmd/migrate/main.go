package main

import (
	"context"
	"log"

	"glaze-matrix-be/internal/config"
	"glaze-matrix-be/internal/storage"
	"glaze-matrix-be/pkg/database"
)

func main() {
	cfg := config.Load()

	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	ctx := context.Background()

	db, err := database.OpenWithTimeout(ctx, cfg.Database.Connection, cfg.Database.ConnectTimeout)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	defer database.Close(db)

	log.Println("Running AutoMigrate for toggle_states and reconciliation_runs...")

	if err := storage.Migrate(ctx, db); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	log.Println("✅ Migration completed")
}
