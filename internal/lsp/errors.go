package lsp

import (
	"fmt"
	"strings"

	"github.com/nglmercer/trigger-system/internal/errors"
)

// The two terminal resolution failures. Callers that only care which stage
// failed match on these with errors.Is; the typed errors below carry the
// details.
var (
	ErrInterpreterNotFound = errors.New("interpreter not found")
	ErrBundleNotFound      = errors.New("bundle not found")
)

// InterpreterNotFoundError reports that no usable Node.js interpreter could
// be located. Configured is the explicit path or name from settings, empty
// when the default PATH search failed.
type InterpreterNotFoundError struct {
	Configured string
}

func (e InterpreterNotFoundError) Error() string {
	if e.Configured != "" {
		return fmt.Sprintf("configured node interpreter %q was not found or is not executable", e.Configured)
	}
	return "node executable not found in PATH. Please install Node.js."
}

func (e InterpreterNotFoundError) Is(target error) bool {
	return target == ErrInterpreterNotFound
}

// bundleRemediation is shown wherever a missing bundle is reported.
const bundleRemediation = "Ensure 'bun run build:lsp' was run and the bundle is in the extension folder."

// BundleNotFoundError reports that no server bundle exists at any searched
// path. Searched lists every path that was checked, in the order checked.
type BundleNotFoundError struct {
	Searched []string
}

func (e BundleNotFoundError) Error() string {
	var b strings.Builder
	b.WriteString("Trigger System LSP not found.\nSearched in:\n")
	for i, path := range e.Searched {
		fmt.Fprintf(&b, "%d. %q\n", i+1, path)
	}
	b.WriteString("\n" + bundleRemediation)
	return b.String()
}

func (e BundleNotFoundError) Is(target error) bool {
	return target == ErrBundleNotFound
}
