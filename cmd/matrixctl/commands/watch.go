package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glaze-matrix-be/internal/config"
	"glaze-matrix-be/internal/printer"
	"glaze-matrix-be/pkg/events"
	pktNats "glaze-matrix-be/pkg/nats"

	"github.com/spf13/cobra"
)

var watchDurable string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream matrix events from NATS until interrupted",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchDurable, "durable", "", "Durable consumer name (ephemeral when empty)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cfg.App.NatsURL == "" {
		return printer.Error("NATS is not configured", "matrix events are only published to NATS when NATS_URL is set", []string{
			"Set NATS_URL for both the server and matrixctl",
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		return printer.Error("Failed to connect to NATS", err.Error(), nil)
	}
	defer sub.Close()

	err = sub.Subscribe(ctx, pktNats.SubjectPrefix+".>", watchDurable, func(ctx context.Context, event events.Event) error {
		printer.Step("%s %s\n", event.Timestamp().Local().Format(time.RFC3339), event.EventType())
		for k, v := range event.Payload() {
			printer.Info("  %s: %v\n", k, v)
		}
		return nil
	})
	if err != nil {
		return printer.Error("Failed to subscribe", err.Error(), nil)
	}

	printer.Success("Watching %s (Ctrl+C to stop)\n", cfg.App.NatsURL)
	<-ctx.Done()
	return nil
}
