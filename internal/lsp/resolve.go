package lsp

import (
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/nglmercer/trigger-system/internal/config"
	"github.com/nglmercer/trigger-system/internal/errors"
	"github.com/nglmercer/trigger-system/internal/fs"
)

type ResolveOutputFormat int

const (
	ResolveOutputText ResolveOutputFormat = iota
	ResolveOutputJSON
	ResolveOutputShell
)

func NewResolveOutputFormat(formatString string) (ResolveOutputFormat, error) {
	switch formatString {
	case "text":
		return ResolveOutputText, nil
	case "json":
		return ResolveOutputJSON, nil
	case "shell":
		return ResolveOutputShell, nil
	default:
		return 0, errors.New("unknown output format, expected one of: text, json, shell")
	}
}

const (
	// BundleName is the filename of the prebuilt language server.
	BundleName = "server.bundle.js"

	// interpreterName is the executable searched for on PATH when settings
	// do not name one.
	interpreterName = "node"

	// stdioFlag tells the server to speak the protocol over stdin/stdout.
	stdioFlag = "--stdio"
)

// Resolve locates the interpreter and the server bundle and composes the
// command that starts the server. The interpreter is checked first; a missing
// bundle never masks a missing interpreter. Resolve reads the filesystem but
// never writes to it.
func Resolve(root string, launcher config.Launcher) (Command, error) {
	interpreter, err := findInterpreter(launcher.Node.Path)
	if err != nil {
		return Command{}, err
	}

	bundle, err := findBundle(root, launcher.Server.Path)
	if err != nil {
		return Command{}, err
	}

	return composeCommand(interpreter, bundle, launcher), nil
}

// findInterpreter returns the path to the Node.js interpreter. An explicit
// path or name from settings wins; otherwise PATH is searched for "node".
func findInterpreter(configured string) (string, error) {
	name := configured
	if name == "" {
		name = interpreterName
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", InterpreterNotFoundError{Configured: configured}
	}

	return path, nil
}

// findBundle returns the first existing candidate path. Candidates are
// checked in order and the first match wins, even if later candidates also
// exist.
func findBundle(root string, configured string) (string, error) {
	searched := searchedCandidates(root, configured)

	for _, candidate := range searched {
		exists, err := fs.Exists(candidate)
		if err != nil {
			return "", errors.Wrapf(err, "unable to check %q", candidate)
		}
		if exists {
			return candidate, nil
		}
	}

	return "", BundleNotFoundError{Searched: searched}
}

// searchedCandidates returns every path findBundle will check, in order. A
// configured server path is tried before the built-in candidates.
func searchedCandidates(root string, configured string) []string {
	candidates := bundleCandidates(root)
	if configured != "" {
		candidates = append([]string{expandServerPath(root, configured)}, candidates...)
	}
	return candidates
}

// bundleCandidates returns the built-in search paths for the server bundle.
// The bare BundleName is deliberately relative and is checked against the
// process working directory.
func bundleCandidates(root string) []string {
	return []string{
		filepath.Join(root, "vscode-extension", "dist", "lsp", BundleName),
		BundleName,
		"/" + BundleName,
	}
}

// expandServerPath resolves a configured server path. Relative paths are
// anchored at the project root. Glob patterns are expanded and the lexically
// greatest match wins, so versioned layouts like dist/v*/server.bundle.js
// select the newest build. A pattern with no matches is returned as-is so the
// not-found error can show it.
func expandServerPath(root string, configured string) string {
	path := configured
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	if !strings.ContainsAny(configured, "*?[{") {
		return path
	}

	matches, err := doublestar.FilepathGlob(path)
	if err != nil || len(matches) == 0 {
		return path
	}

	sort.Strings(matches)
	return matches[len(matches)-1]
}

// composeCommand builds the final command: interpreter args first, then the
// bundle path, then --stdio, then server args. The --stdio flag is always
// present.
func composeCommand(interpreter string, bundle string, launcher config.Launcher) Command {
	args := make([]string, 0, len(launcher.Node.Args)+2+len(launcher.Server.Args))
	args = append(args, launcher.Node.Args...)
	args = append(args, bundle, stdioFlag)
	args = append(args, launcher.Server.Args...)

	env := make(map[string]string, len(launcher.Env))
	for key, value := range launcher.Env {
		env[key] = value
	}

	return Command{Path: interpreter, Args: args, Env: env}
}

// WriteCommand renders a resolved command in the requested format. The shell
// format is a single line suitable for eval.
func WriteCommand(w io.Writer, format ResolveOutputFormat, command Command) error {
	switch format {
	case ResolveOutputText:
		fmt.Fprintf(w, "interpreter: %s\n", command.Path)
		for _, arg := range command.Args {
			fmt.Fprintf(w, "arg: %s\n", arg)
		}
		for _, pair := range command.ExtraEnviron() {
			fmt.Fprintf(w, "env: %s\n", pair)
		}
		return nil
	case ResolveOutputJSON:
		return json.NewEncoder(w).Encode(command)
	case ResolveOutputShell:
		_, err := fmt.Fprintln(w, command.String())
		return err
	}
	return nil
}
