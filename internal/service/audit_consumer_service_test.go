package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"glaze-matrix-be/internal/pkg/logger"
	"glaze-matrix-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditConsumer_WritesPublishedEvents(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	auditPath := filepath.Join(t.TempDir(), "audit.log")
	auditLogger := logger.NewIsolatedLogger(auditPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := NewAuditConsumerService(pubSub, "matrix.events", auditLogger)
	require.NoError(t, consumer.Consume(ctx))

	sink := &recordingPublisher{}
	publisher := NewPublisherService("matrix.events", pubSub, sink, logger.NewNopLogger())

	// A malformed message is acknowledged and skipped
	require.NoError(t, pubSub.Publish("matrix.events", message.NewMessage(watermill.NewUUID(), []byte("garbage"))))

	require.NoError(t, publisher.Publish(ctx, events.BaseEvent{
		Type:       events.TypeToggleStatesSaved,
		Data:       map[string]interface{}{"count": 2},
		OccurredAt: time.Now(),
	}))
	assert.Equal(t, []string{events.TypeToggleStatesSaved}, sink.types())

	require.Eventually(t, func() bool {
		_ = auditLogger.Sync()
		raw, err := os.ReadFile(auditPath)
		return err == nil && strings.Contains(string(raw), events.TypeToggleStatesSaved)
	}, 2*time.Second, 20*time.Millisecond)

	raw, err := os.ReadFile(auditPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")

	var last map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &last))
	assert.Equal(t, events.TypeToggleStatesSaved, last["message"])
	details := last["details"].(map[string]interface{})
	assert.Equal(t, float64(2), details["count"])
	assert.NotEmpty(t, details["occurred_at"])
}
