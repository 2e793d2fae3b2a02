package editors

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/nglmercer/trigger-system/internal/errors"
	"github.com/nglmercer/trigger-system/internal/fs"
)

// serverName identifies the Trigger System language server inside editor
// configuration.
const serverName = "trigger-lsp"

// launcherArgv is the command every integration points its editor at. The
// launcher re-resolves the interpreter and bundle each time the editor starts
// it, so the emitted files never contain machine-specific paths.
var launcherArgv = []string{"trigger", "lsp", "serve"}

// triggerFiletypes are the file types the language server attaches to.
var triggerFiletypes = []string{"yaml", "json"}

// Integration is a rendered editor configuration and the project-relative
// file it conventionally lives in.
type Integration struct {
	Path     string
	Contents string
}

func (e Editor) Integration() (Integration, error) {
	switch e {
	case Zed:
		return zedIntegration()
	case VSCode:
		return vscodeIntegration()
	case Helix:
		return helixIntegration()
	case Neovim:
		return neovimIntegration(), nil
	}
	return Integration{}, errors.Errorf("no integration available for %q", e)
}

type zedSettings struct {
	LSP map[string]zedLanguageServer `json:"lsp"`
}

type zedLanguageServer struct {
	Binary zedBinary `json:"binary"`
}

type zedBinary struct {
	Path      string   `json:"path"`
	Arguments []string `json:"arguments"`
}

// zedIntegration renders project settings that replace the binary of the Zed
// extension's registered language server with the launcher.
func zedIntegration() (Integration, error) {
	settings := zedSettings{
		LSP: map[string]zedLanguageServer{
			serverName: {Binary: zedBinary{Path: launcherArgv[0], Arguments: launcherArgv[1:]}},
		},
	}

	contents, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return Integration{}, errors.Wrap(err, "unable to render Zed settings")
	}

	return Integration{
		Path:     filepath.Join(".zed", "settings.json"),
		Contents: string(contents) + "\n",
	}, nil
}

type vscodeSettings struct {
	Command []string `json:"trigger.lsp.command"`
}

func vscodeIntegration() (Integration, error) {
	settings := vscodeSettings{Command: launcherArgv}

	contents, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return Integration{}, errors.Wrap(err, "unable to render VS Code settings")
	}

	return Integration{
		Path:     filepath.Join(".vscode", "settings.json"),
		Contents: string(contents) + "\n",
	}, nil
}

type helixConfig struct {
	LanguageServer map[string]helixLanguageServer `toml:"language-server"`
	Language       []helixLanguage                `toml:"language"`
}

type helixLanguageServer struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

type helixLanguage struct {
	Name            string   `toml:"name"`
	LanguageServers []string `toml:"language-servers"`
}

func helixIntegration() (Integration, error) {
	languages := make([]helixLanguage, len(triggerFiletypes))
	for i, filetype := range triggerFiletypes {
		languages[i] = helixLanguage{Name: filetype, LanguageServers: []string{serverName}}
	}

	contents, err := toml.Marshal(helixConfig{
		LanguageServer: map[string]helixLanguageServer{
			serverName: {Command: launcherArgv[0], Args: launcherArgv[1:]},
		},
		Language: languages,
	})
	if err != nil {
		return Integration{}, errors.Wrap(err, "unable to render Helix languages")
	}

	return Integration{
		Path:     filepath.Join(".helix", "languages.toml"),
		Contents: string(contents),
	}, nil
}

const neovimConfig = `-- Starts the Trigger System language server through the trigger launcher.
vim.api.nvim_create_autocmd("FileType", {
  pattern = { "yaml", "json" },
  callback = function()
    vim.lsp.start({
      name = "trigger-lsp",
      cmd = { "trigger", "lsp", "serve" },
      root_dir = vim.fs.root(0, { "trigger.yaml", ".trigger", "vscode-extension" }),
    })
  end,
})
`

func neovimIntegration() Integration {
	return Integration{Path: ".nvim.lua", Contents: neovimConfig}
}

type InstallConfig struct {
	Editor Editor
	Root   string
}

// InstallResult describes what Install did with the integration file.
type InstallResult struct {
	Integration Integration
	Path        string
	Written     bool
	Skipped     bool
}

// Install writes the editor's integration file into the project, creating
// parent directories as needed. An existing file is never overwritten; the
// result reports it as skipped so the caller can show the contents for a
// manual merge.
func Install(cfg InstallConfig) (InstallResult, error) {
	integration, err := cfg.Editor.Integration()
	if err != nil {
		return InstallResult{}, err
	}

	path := filepath.Join(cfg.Root, integration.Path)
	result := InstallResult{Integration: integration, Path: path}

	exists, err := fs.Exists(path)
	if err != nil {
		return result, errors.Wrapf(err, "unable to check %q", path)
	}
	if exists {
		result.Skipped = true
		return result, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return result, errors.Wrapf(err, "unable to create %q", filepath.Dir(path))
	}

	if err := os.WriteFile(path, []byte(integration.Contents), 0644); err != nil {
		return result, errors.Wrapf(err, "unable to write %q", path)
	}

	result.Written = true
	return result, nil
}
