package config_test

import (
	"io"
	"io/fs"
	"os"
	"path"
	"testing"

	"github.com/nglmercer/trigger-system/internal/config"
	"github.com/stretchr/testify/require"
)

func TestFileBackend_Get(t *testing.T) {
	t.Run("when there is only a single directory", func(t *testing.T) {
		t.Run("when the file does not exist", func(t *testing.T) {
			primaryTmpDir := t.TempDir()

			backend, err := config.NewFileBackend([]string{primaryTmpDir})
			require.NoError(t, err)

			value, err := backend.Get("testfile")
			require.NoError(t, err)
			require.Equal(t, "", value)
		})

		t.Run("when the file is otherwise unable to be opened", func(t *testing.T) {
			primaryTmpDir := t.TempDir()
			require.NoError(t, os.Chmod(primaryTmpDir, 0o000))
			t.Cleanup(func() { _ = os.Chmod(primaryTmpDir, 0o755) })

			backend, err := config.NewFileBackend([]string{primaryTmpDir})
			require.NoError(t, err)

			value, err := backend.Get("testfile")
			require.Error(t, err)
			require.Contains(t, err.Error(), "unable to open")
			require.ErrorIs(t, err, fs.ErrPermission)
			require.Equal(t, "", value)
		})

		t.Run("when the file is present and has contents", func(t *testing.T) {
			primaryTmpDir := t.TempDir()

			err := os.WriteFile(path.Join(primaryTmpDir, "testfile"), []byte("the-value"), 0o644)
			require.NoError(t, err)

			backend, err := config.NewFileBackend([]string{primaryTmpDir})
			require.NoError(t, err)

			value, err := backend.Get("testfile")
			require.NoError(t, err)
			require.Equal(t, "the-value", value)
		})

		t.Run("when the file includes leading or trailing whitespace", func(t *testing.T) {
			primaryTmpDir := t.TempDir()

			err := os.WriteFile(path.Join(primaryTmpDir, "testfile"), []byte("\n  \t  the-value\t  \n \n"), 0o644)
			require.NoError(t, err)

			backend, err := config.NewFileBackend([]string{primaryTmpDir})
			require.NoError(t, err)

			value, err := backend.Get("testfile")
			require.NoError(t, err)
			require.Equal(t, "the-value", value)
		})
	})

	t.Run("when there are multiple directories", func(t *testing.T) {
		t.Run("when the file does not exist in either directory", func(t *testing.T) {
			primaryTmpDir := t.TempDir()
			fallbackTmpDir := t.TempDir()

			backend, err := config.NewFileBackend([]string{primaryTmpDir, fallbackTmpDir})
			require.NoError(t, err)

			value, err := backend.Get("testfile")
			require.NoError(t, err)
			require.Equal(t, "", value)
		})

		t.Run("when the file exists in the primary but not the fallback", func(t *testing.T) {
			primaryTmpDir := t.TempDir()
			fallbackTmpDir := t.TempDir()

			err := os.WriteFile(path.Join(primaryTmpDir, "testfile"), []byte("primary-value"), 0o644)
			require.NoError(t, err)

			backend, err := config.NewFileBackend([]string{primaryTmpDir, fallbackTmpDir})
			require.NoError(t, err)

			value, err := backend.Get("testfile")
			require.NoError(t, err)
			require.Equal(t, "primary-value", value)
		})

		t.Run("when the file exists in the fallback but not the primary", func(t *testing.T) {
			primaryTmpDir := t.TempDir()
			fallbackTmpDir := t.TempDir()

			err := os.WriteFile(path.Join(fallbackTmpDir, "testfile"), []byte("fallback-value"), 0o644)
			require.NoError(t, err)

			backend, err := config.NewFileBackend([]string{primaryTmpDir, fallbackTmpDir})
			require.NoError(t, err)

			value, err := backend.Get("testfile")
			require.NoError(t, err)
			require.Equal(t, "fallback-value", value)

			// Reading must not copy the file into the primary directory.
			_, err = os.Stat(path.Join(primaryTmpDir, "testfile"))
			require.True(t, os.IsNotExist(err))
		})

		t.Run("when the file exists in both directories", func(t *testing.T) {
			primaryTmpDir := t.TempDir()
			fallbackTmpDir := t.TempDir()

			err := os.WriteFile(path.Join(primaryTmpDir, "testfile"), []byte("primary-value"), 0o644)
			require.NoError(t, err)
			err = os.WriteFile(path.Join(fallbackTmpDir, "testfile"), []byte("fallback-value"), 0o644)
			require.NoError(t, err)

			backend, err := config.NewFileBackend([]string{primaryTmpDir, fallbackTmpDir})
			require.NoError(t, err)

			value, err := backend.Get("testfile")
			require.NoError(t, err)
			require.Equal(t, "primary-value", value)
		})
	})
}

func TestFileBackend_Set(t *testing.T) {
	t.Run("when creating the file errors", func(t *testing.T) {
		primaryTmpDir := t.TempDir()
		require.NoError(t, os.Chmod(primaryTmpDir, 0o400))
		t.Cleanup(func() { _ = os.Chmod(primaryTmpDir, 0o755) })

		backend, err := config.NewFileBackend([]string{primaryTmpDir})
		require.NoError(t, err)

		err = backend.Set("testfile", "the-value")
		require.Contains(t, err.Error(), "permission denied")
		require.ErrorIs(t, err, fs.ErrPermission)
	})

	t.Run("when the file is created", func(t *testing.T) {
		primaryTmpDir := t.TempDir()

		backend, err := config.NewFileBackend([]string{primaryTmpDir})
		require.NoError(t, err)

		err = backend.Set("testfile", "the-value")
		require.NoError(t, err)

		file, err := os.Open(path.Join(primaryTmpDir, "testfile"))
		require.NoError(t, err)
		defer file.Close()

		bytes, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, "the-value", string(bytes))
	})

	t.Run("when the primary directory does not exist yet", func(t *testing.T) {
		primaryTmpDir := path.Join(t.TempDir(), ".trigger")

		backend, err := config.NewFileBackend([]string{primaryTmpDir})
		require.NoError(t, err)

		err = backend.Set("testfile", "the-value")
		require.NoError(t, err)

		bytes, err := os.ReadFile(path.Join(primaryTmpDir, "testfile"))
		require.NoError(t, err)
		require.Equal(t, "the-value", string(bytes))
	})
}
