package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewFileLogger(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "todo.log")
	log, err := NewFileLogger(true, path)
	require.NoError(t, err)

	log.Debug("record saved", zap.String("key", "tasks"))
	require.NoError(t, Sync(log))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	line := strings.TrimSpace(string(data))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "record saved", entry["msg"])
	assert.Equal(t, "tasks", entry["key"])
	assert.Contains(t, entry, "ts")
}

func TestInfoLevelDropsDebug(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "todo.log")
	log, err := NewFileLogger(false, path)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("shown")
	require.NoError(t, Sync(log))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestSyncNil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Sync(nil))
}

func TestNewDevelopmentLogger(t *testing.T) {
	t.Parallel()

	log, err := NewDevelopmentLogger(false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.DebugLevel))
}
