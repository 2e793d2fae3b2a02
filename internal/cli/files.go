package cli

import (
	"os"
	"path/filepath"

	"github.com/nglmercer/trigger-system/internal/config"
	"github.com/nglmercer/trigger-system/internal/errors"
	"github.com/nglmercer/trigger-system/internal/fs"
)

// projectMarkers identify a Trigger System project root, checked in order.
var projectMarkers = []string{"vscode-extension", "trigger.yaml", ".trigger"}

// FindProjectRoot returns the configured directory, if given, or walks up
// from the working directory until a directory containing a project marker is
// found. When nothing matches, the working directory itself is returned so
// resolution still behaves sensibly outside a project.
func FindProjectRoot(configuredDirectory string) (string, error) {
	if configuredDirectory != "" {
		info, err := os.Stat(configuredDirectory)
		if err != nil {
			return "", errors.Wrapf(err, "unable to read the project directory at %q", configuredDirectory)
		}
		if !info.IsDir() {
			return "", errors.Errorf("project directory at %q is not a directory", configuredDirectory)
		}
		return configuredDirectory, nil
	}

	workingDirectory, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "unable to determine the working directory")
	}

	dir := workingDirectory
	for {
		for _, marker := range projectMarkers {
			found, err := fs.Exists(filepath.Join(dir, marker))
			if err != nil {
				return "", errors.Wrapf(err, "unable to determine if %s exists in %q", marker, dir)
			}
			if found {
				return dir, nil
			}
		}

		if dir == string(os.PathSeparator) {
			return workingDirectory, nil
		}

		parentDir, _ := filepath.Split(dir)
		dir = filepath.Clean(parentDir)
	}
}

// LauncherSettingsBackend returns the settings store for a project: the
// project's .trigger directory first, then the user-level fallback.
func LauncherSettingsBackend(root string) (*config.FileBackend, error) {
	return config.NewFileBackend([]string{
		filepath.Join(root, ".trigger"),
		filepath.Join("~", ".config", "trigger"),
	})
}
