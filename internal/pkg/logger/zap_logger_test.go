package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLogger_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	l := NewIsolatedLogger(path)

	l.Info("AUDIT", "toggle states saved", map[string]interface{}{"count": 3})
	l.Debug("AUDIT", "below file level", nil)
	_ = l.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "toggle states saved", entry["message"])
	assert.Equal(t, "AUDIT", entry["module"])
	assert.Equal(t, float64(3), entry["details"].(map[string]interface{})["count"])
	assert.Equal(t, path, l.FilePath())
}

func TestNopLogger(t *testing.T) {
	var l ILogger = NewNopLogger()
	l.Error("TEST", "dropped", map[string]interface{}{"error": "x"})
	assert.NoError(t, l.Sync())
}
