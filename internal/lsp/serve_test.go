package lsp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nglmercer/trigger-system/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func writeFakeNode(t *testing.T, script string) {
	t.Helper()
	binDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "node"), []byte(script), 0o755))
	t.Setenv("PATH", binDir)
}

func TestServe_RunsTheResolvedCommand(t *testing.T) {
	writeFakeNode(t, "#!/bin/sh\nexit 0\n")
	root := t.TempDir()
	writeDistBundle(t, root)

	code, err := Serve(root, config.Launcher{}, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 0, code)
}

func TestServe_PropagatesTheServerExitCode(t *testing.T) {
	writeFakeNode(t, "#!/bin/sh\nexit 7\n")
	root := t.TempDir()
	writeDistBundle(t, root)

	code, err := Serve(root, config.Launcher{}, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 7, code)
}

func TestServe_MergesExtraEnvironmentIntoTheServer(t *testing.T) {
	writeFakeNode(t, "#!/bin/sh\n[ \"$TRIGGER_TEST_FLAG\" = \"on\" ] || exit 9\nexit 0\n")
	root := t.TempDir()
	writeDistBundle(t, root)

	launcher := config.Launcher{Env: map[string]string{"TRIGGER_TEST_FLAG": "on"}}

	code, err := Serve(root, launcher, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 0, code)
}

func TestServe_ReturnsResolutionErrorsUnchanged(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	t.Chdir(t.TempDir())

	_, err := Serve(t.TempDir(), config.Launcher{}, zap.NewNop())
	require.ErrorIs(t, err, ErrInterpreterNotFound)
}

func TestRunServer_SpawnFailureIsNotAResolutionError(t *testing.T) {
	command := Command{Path: filepath.Join(t.TempDir(), "missing-interpreter")}

	_, err := runServer(command, zap.NewNop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unable to start language server")
	require.NotErrorIs(t, err, ErrInterpreterNotFound)
}

func TestStderrMirror_LogsWholeLinesWithoutColorCodes(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	mirror := &stderrMirror{logger: zap.New(core)}

	_, err := mirror.Write([]byte("\x1b[31mboom"))
	require.NoError(t, err)
	require.Equal(t, 0, logs.Len(), "partial lines are buffered")

	_, err = mirror.Write([]byte(" happened\x1b[0m\ntrailing"))
	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	require.Equal(t, "boom happened", logs.All()[0].ContextMap()["line"])
}
