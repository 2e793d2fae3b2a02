package cli

import "github.com/nglmercer/trigger-system/internal/errors"

// HandledError signals that the failing command already printed its own
// diagnostics. main still exits non-zero but prints nothing further.
var HandledError = errors.New("handled error")
