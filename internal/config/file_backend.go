package config

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/nglmercer/trigger-system/internal/errors"
)

// FileBackend reads settings files from a list of directories, preferring the
// first. Get never writes to the filesystem. Set always writes to the primary
// directory, creating it if needed.
type FileBackend struct {
	PrimaryDirectory    string
	FallbackDirectories []string
}

func NewFileBackend(dirs []string) (*FileBackend, error) {
	if len(dirs) < 1 {
		return nil, fmt.Errorf("at least one directory must be provided")
	}

	primaryDirectory, err := expandTilde(dirs[0])
	if err != nil {
		return nil, err
	}

	fallbackDirectories := make([]string, len(dirs)-1)
	for i, dir := range dirs[1:] {
		fallbackDir, err := expandTilde(dir)
		if err != nil {
			return nil, err
		}
		fallbackDirectories[i] = fallbackDir
	}

	return &FileBackend{
		PrimaryDirectory:    primaryDirectory,
		FallbackDirectories: fallbackDirectories,
	}, nil
}

func (f FileBackend) Get(filename string) (string, error) {
	dirs := append([]string{f.PrimaryDirectory}, f.FallbackDirectories...)

	for _, dir := range dirs {
		value, err := f.getFrom(dir, filename)

		if err != nil && errors.Is(err, errors.ErrFileNotExists) {
			continue
		}

		return value, err
	}

	return "", nil
}

func (f FileBackend) getFrom(dir, filename string) (string, error) {
	path := filepath.Join(dir, filename)
	fd, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.ErrFileNotExists
		}
		return "", errors.Wrapf(err, "unable to open %q", path)
	}
	defer fd.Close()

	contents, err := io.ReadAll(fd)
	if err != nil {
		return "", errors.Wrapf(err, "error reading %q", path)
	}

	return strings.TrimSpace(string(contents)), nil
}

func (f FileBackend) Set(filename, value string) error {
	err := os.MkdirAll(f.PrimaryDirectory, os.ModePerm)
	if err != nil {
		return errors.Wrapf(err, "unable to create %q", f.PrimaryDirectory)
	}

	path := filepath.Join(f.PrimaryDirectory, filename)
	fd, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %q", path)
	}
	defer fd.Close()

	_, err = io.WriteString(fd, value)
	if err != nil {
		return errors.Wrapf(err, "unable to write to %q", path)
	}

	return nil
}

var tildeSlash = fmt.Sprintf("~%v", string(os.PathSeparator))

func expandTilde(dir string) (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}

	if strings.HasPrefix(dir, tildeSlash) {
		return filepath.Join(user.HomeDir, strings.TrimPrefix(dir, tildeSlash)), nil
	} else if dir == "~" {
		return user.HomeDir, nil
	} else {
		return dir, nil
	}
}
