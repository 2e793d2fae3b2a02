package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	shellwords "github.com/mattn/go-shellwords"

	"github.com/nglmercer/trigger-system/internal/errors"
)

// LauncherFilename is the settings file the launcher reads, typically from the
// project's .trigger directory.
const LauncherFilename = "lsp.yaml"

// ProjectFilename is the project definition file. Its lsp section is read
// when no dedicated settings file exists.
const ProjectFilename = "trigger.yaml"

// Environment variables that override the corresponding settings file values.
// The *_ARGS variables hold shell-style words, e.g. `--inspect "--title=lsp"`.
const (
	NodePathEnvVar   = "TRIGGER_LSP_NODE"
	NodeArgsEnvVar   = "TRIGGER_LSP_NODE_ARGS"
	ServerPathEnvVar = "TRIGGER_LSP_SERVER_PATH"
	ServerArgsEnvVar = "TRIGGER_LSP_SERVER_ARGS"
)

// Launcher holds user overrides for how the language server is located and
// started. The zero value means everything is resolved automatically.
type Launcher struct {
	Node   LauncherNode   `yaml:"node"`
	Server LauncherServer `yaml:"server"`

	// Env is merged into the server's environment. It never replaces the
	// parent environment wholesale.
	Env map[string]string `yaml:"env"`
}

// LauncherNode selects the interpreter. Path skips the PATH search entirely;
// Args are inserted between the interpreter and the bundle.
type LauncherNode struct {
	Path string   `yaml:"path"`
	Args []string `yaml:"args"`
}

// LauncherServer selects the bundle. Path is tried before the built-in
// candidates and may contain ** glob patterns; Args are appended after
// --stdio.
type LauncherServer struct {
	Path string   `yaml:"path"`
	Args []string `yaml:"args"`
}

// LoadLauncher reads LauncherFilename through backend, falling back to the
// lsp section of the project's trigger.yaml, and layers environment variable
// overrides on top. Missing files are not an error; the overrides still apply
// to the zero value.
func LoadLauncher(root string, backend Backend) (Launcher, error) {
	launcher, err := loadLauncherSettings(root, backend)
	if err != nil {
		return launcher, err
	}

	launcher, err = launcher.withEnvOverrides()
	if err != nil {
		return launcher, err
	}

	return launcher.withExpandedPaths()
}

func loadLauncherSettings(root string, backend Backend) (Launcher, error) {
	var launcher Launcher

	contents, err := backend.Get(LauncherFilename)
	if err != nil {
		return launcher, errors.Wrapf(err, "unable to read %s", LauncherFilename)
	}

	if contents != "" {
		if err := yaml.Unmarshal([]byte(contents), &launcher); err != nil {
			return launcher, errors.Wrapf(err, "unable to parse %s", LauncherFilename)
		}
		return launcher, nil
	}

	if root == "" {
		return launcher, nil
	}

	path := filepath.Join(root, ProjectFilename)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return launcher, nil
		}
		return launcher, errors.Wrapf(err, "unable to read %q", path)
	}

	var project struct {
		Lsp *Launcher `yaml:"lsp"`
	}
	if err := yaml.Unmarshal(raw, &project); err != nil {
		return launcher, errors.Wrapf(err, "unable to parse %q", path)
	}
	if project.Lsp != nil {
		launcher = *project.Lsp
	}

	return launcher, nil
}

func (l Launcher) withEnvOverrides() (Launcher, error) {
	if path := os.Getenv(NodePathEnvVar); path != "" {
		l.Node.Path = path
	}

	if raw := os.Getenv(NodeArgsEnvVar); raw != "" {
		args, err := shellwords.Parse(raw)
		if err != nil {
			return l, errors.Wrapf(err, "unable to parse %s", NodeArgsEnvVar)
		}
		l.Node.Args = args
	}

	if path := os.Getenv(ServerPathEnvVar); path != "" {
		l.Server.Path = path
	}

	if raw := os.Getenv(ServerArgsEnvVar); raw != "" {
		args, err := shellwords.Parse(raw)
		if err != nil {
			return l, errors.Wrapf(err, "unable to parse %s", ServerArgsEnvVar)
		}
		l.Server.Args = args
	}

	return l, nil
}

// withExpandedPaths resolves a leading ~ in the configured paths, so settings
// like `path: ~/custom/bin/node` work the way a shell user expects.
func (l Launcher) withExpandedPaths() (Launcher, error) {
	if strings.HasPrefix(l.Node.Path, "~") {
		path, err := expandTilde(l.Node.Path)
		if err != nil {
			return l, errors.Wrapf(err, "unable to expand %q", l.Node.Path)
		}
		l.Node.Path = path
	}

	if strings.HasPrefix(l.Server.Path, "~") {
		path, err := expandTilde(l.Server.Path)
		if err != nil {
			return l, errors.Wrapf(err, "unable to expand %q", l.Server.Path)
		}
		l.Server.Path = path
	}

	return l, nil
}

// DefaultLauncherContents is scaffolded by `trigger lsp setup --write` when a
// project has no settings file yet. Everything is commented out, so writing it
// changes no behavior.
const DefaultLauncherContents = `# Launcher settings for the Trigger System language server.
# All keys are optional; remove the leading # to activate one.
#
# node:
#   path: /usr/local/bin/node
#   args: ["--max-old-space-size=4096"]
#
# server:
#   path: vscode-extension/dist/lsp/server.bundle.js
#   args: ["--verbose"]
#
# env:
#   TRIGGER_LOG_LEVEL: debug
`
