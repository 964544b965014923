package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := FromZap(zap.New(core)).With("run_id", "r1")

	log.Info("Processed file", map[string]interface{}{"file": "a.json", "actions": 2})
	log.Error("Failed", assert.AnError, nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Processed file", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "r1", ctx["run_id"])
	assert.Equal(t, "a.json", ctx["file"])
	assert.Equal(t, assert.AnError.Error(), entries[1].ContextMap()["error"])
}

func TestNewWritesLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "shortcuts-doc.log")
	log, err := New(Config{LogFormat: "json", LogFile: logFile})
	require.NoError(t, err)

	log.Info("hello", nil)
	_ = log.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestFlattenFieldsSorted(t *testing.T) {
	flat := flattenFields(map[string]interface{}{"b": 2, "a": 1})
	assert.Equal(t, []interface{}{"a", 1, "b", 2}, flat)
}
