package fs

import (
	"os"
	"syscall"

	"github.com/nglmercer/trigger-system/internal/errors"
)

// Exists reports whether path refers to an existing file or directory. A path
// that descends through a regular file counts as absent. Other stat failures
// (for example permission errors on a parent directory) are returned so
// callers do not mistake them for absence.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
		return false, nil
	}
	return false, errors.WithStack(err)
}
