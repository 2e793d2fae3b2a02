package lsp

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nglmercer/trigger-system/internal/config"
	"github.com/nglmercer/trigger-system/internal/mocks"
	"github.com/stretchr/testify/require"
)

func nodeProbe(t *testing.T, version string) *mocks.CommandRunner {
	t.Helper()
	return &mocks.CommandRunner{
		MockOutput: func(name string, args ...string) ([]byte, error) {
			require.Equal(t, []string{"--version"}, args)
			return []byte(version + "\n"), nil
		},
	}
}

func TestDoctor_ReportsHealthyWhenEverythingIsInPlace(t *testing.T) {
	binDir := t.TempDir()
	nodePath := filepath.Join(binDir, "node")
	writeExecutable(t, nodePath)
	t.Setenv("PATH", binDir)

	root := t.TempDir()
	bundlePath := writeDistBundle(t, root)

	var buf bytes.Buffer
	report, err := Doctor(DoctorConfig{Root: root, Runner: nodeProbe(t, "v22.1.0")}, config.Launcher{}, &buf)
	require.NoError(t, err)

	require.True(t, report.Healthy)
	require.True(t, report.Interpreter.Found)
	require.Equal(t, nodePath, report.Interpreter.Path)
	require.Equal(t, "22.1.0", report.Interpreter.Version)
	require.True(t, report.Interpreter.Supported)
	require.True(t, report.Bundle.Found)
	require.Equal(t, bundlePath, report.Bundle.Path)
	require.NotNil(t, report.Command)
	require.Equal(t, []string{bundlePath, "--stdio"}, report.Command.Args)

	require.Contains(t, buf.String(), "Everything the language server needs is in place.")
}

func TestDoctor_ReportsBothProblemsAtOnce(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	report, err := Doctor(DoctorConfig{Root: t.TempDir()}, config.Launcher{}, &buf)
	require.NoError(t, err)

	require.False(t, report.Healthy)
	require.False(t, report.Interpreter.Found)
	require.Contains(t, report.Interpreter.Problem, "node executable not found in PATH")
	require.False(t, report.Bundle.Found)
	require.Len(t, report.Bundle.Candidates, 3)
	for _, candidate := range report.Bundle.Candidates {
		require.False(t, candidate.Exists)
	}
	require.Nil(t, report.Command)

	require.Contains(t, buf.String(), "bun run build:lsp")
	require.Contains(t, buf.String(), "cannot start")
}

func TestDoctor_FlagsInterpretersOlderThanTheMinimum(t *testing.T) {
	binDir := t.TempDir()
	writeExecutable(t, filepath.Join(binDir, "node"))
	t.Setenv("PATH", binDir)

	root := t.TempDir()
	writeDistBundle(t, root)

	var buf bytes.Buffer
	report, err := Doctor(DoctorConfig{Root: root, Runner: nodeProbe(t, "v16.20.2")}, config.Launcher{}, &buf)
	require.NoError(t, err)

	require.False(t, report.Healthy)
	require.True(t, report.Interpreter.Found)
	require.False(t, report.Interpreter.Supported)
	require.Contains(t, report.Interpreter.Problem, "older than the minimum supported")

	// An old interpreter can still launch the server, so the command is
	// reported even though the doctor complains.
	require.NotNil(t, report.Command)
}

func TestDoctor_ReportsAFailedVersionProbe(t *testing.T) {
	binDir := t.TempDir()
	writeExecutable(t, filepath.Join(binDir, "node"))
	t.Setenv("PATH", binDir)

	root := t.TempDir()
	writeDistBundle(t, root)

	runner := &mocks.CommandRunner{
		MockOutput: func(name string, args ...string) ([]byte, error) {
			return nil, os.ErrPermission
		},
	}

	var buf bytes.Buffer
	report, err := Doctor(DoctorConfig{Root: root, Runner: runner}, config.Launcher{}, &buf)
	require.NoError(t, err)

	require.False(t, report.Healthy)
	require.True(t, report.Interpreter.Found)
	require.Contains(t, report.Interpreter.Problem, "--version")
}

func TestDoctor_WritesJSON(t *testing.T) {
	binDir := t.TempDir()
	writeExecutable(t, filepath.Join(binDir, "node"))
	t.Setenv("PATH", binDir)

	root := t.TempDir()
	bundlePath := writeDistBundle(t, root)

	var buf bytes.Buffer
	_, err := Doctor(DoctorConfig{
		Root:         root,
		OutputFormat: DoctorOutputJSON,
		Runner:       nodeProbe(t, "v20.11.0"),
	}, config.Launcher{}, &buf)
	require.NoError(t, err)

	var decoded struct {
		Healthy     bool
		Interpreter struct{ Version string }
		Bundle      struct {
			Path       string
			Candidates []struct{ Exists bool }
		}
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.True(t, decoded.Healthy)
	require.Equal(t, "20.11.0", decoded.Interpreter.Version)
	require.Equal(t, bundlePath, decoded.Bundle.Path)
	require.Len(t, decoded.Bundle.Candidates, 3)
}

func TestNewDoctorOutputFormat(t *testing.T) {
	format, err := NewDoctorOutputFormat("text")
	require.NoError(t, err)
	require.Equal(t, DoctorOutputText, format)

	format, err = NewDoctorOutputFormat("json")
	require.NoError(t, err)
	require.Equal(t, DoctorOutputJSON, format)

	_, err = NewDoctorOutputFormat("shell")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown output format")
}
