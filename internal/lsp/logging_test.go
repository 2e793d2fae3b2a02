package lsp

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger_IsSilentWithoutALogFile(t *testing.T) {
	logger, err := NewLogger("")
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zap.InfoLevel))
}

func TestNewLogger_WritesJSONEntriesWithAnInstanceID(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "lsp.log")

	logger, err := NewLogger(logFile)
	require.NoError(t, err)

	logger.Info("starting language server")
	require.NoError(t, logger.Sync())

	contents, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(contents), &entry))
	require.Equal(t, "starting language server", entry["msg"])
	require.NotEmpty(t, entry["instance"])
}

func TestNewLogger_ErrorsWhenTheLogFileCannotBeOpened(t *testing.T) {
	_, err := NewLogger(filepath.Join(t.TempDir(), "missing", "nested", "lsp.log"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unable to open log file")
}
