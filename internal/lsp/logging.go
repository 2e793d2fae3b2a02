package lsp

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nglmercer/trigger-system/internal/errors"
)

// NewLogger returns a no-op logger unless logFile is set, in which case JSON
// entries are written there. Nothing is ever logged to stdout or stderr:
// stdio carries the protocol once the server is running.
func NewLogger(logFile string) (*zap.Logger, error) {
	if logFile == "" {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{logFile}
	cfg.ErrorOutputPaths = []string{logFile}

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open log file %q", logFile)
	}

	return logger.With(zap.String("instance", uuid.NewString())), nil
}
