package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/nglmercer/trigger-system/internal/config"
	"github.com/nglmercer/trigger-system/internal/editors"
)

type SetupEditorConfig struct {
	Editor editors.Editor
	Root   string
	Write  bool

	// SettingsBackend receives the scaffolded lsp.yaml. Left nil, the
	// project's settings directories are used.
	SettingsBackend *config.FileBackend

	Stdout io.Writer
}

type SetupEditorResult struct {
	Path    string
	Written bool
	Skipped bool
}

// SetupEditor renders the editor integration for a project. Without Write it
// previews the file; with Write it installs the integration and scaffolds
// .trigger/lsp.yaml so the launcher settings have a starting point.
func SetupEditor(cfg SetupEditorConfig) (SetupEditorResult, error) {
	bold := color.New(color.Bold).SprintFunc()

	if !cfg.Write {
		integration, err := cfg.Editor.Integration()
		if err != nil {
			return SetupEditorResult{}, err
		}

		fmt.Fprintf(cfg.Stdout, "%s\n\n", bold(integration.Path))
		fmt.Fprint(cfg.Stdout, integration.Contents)
		fmt.Fprintln(cfg.Stdout)
		fmt.Fprintln(cfg.Stdout, "Re-run with --write to install this file.")

		return SetupEditorResult{Path: filepath.Join(cfg.Root, integration.Path)}, nil
	}

	installed, err := editors.Install(editors.InstallConfig{Editor: cfg.Editor, Root: cfg.Root})
	if err != nil {
		return SetupEditorResult{}, err
	}

	if installed.Skipped {
		fmt.Fprintf(cfg.Stdout, "%s already exists, merge this into it:\n\n", bold(installed.Path))
		fmt.Fprint(cfg.Stdout, installed.Integration.Contents)
	} else {
		fmt.Fprintf(cfg.Stdout, "Wrote %s\n", installed.Path)
	}

	result := SetupEditorResult{Path: installed.Path, Written: installed.Written, Skipped: installed.Skipped}

	if err := scaffoldLauncherSettings(cfg); err != nil {
		return result, err
	}

	return result, nil
}

// scaffoldLauncherSettings writes a commented-out lsp.yaml when the project
// has none. Existing settings, including global ones, are left alone.
func scaffoldLauncherSettings(cfg SetupEditorConfig) error {
	backend := cfg.SettingsBackend
	if backend == nil {
		var err error
		backend, err = LauncherSettingsBackend(cfg.Root)
		if err != nil {
			return err
		}
	}

	contents, err := backend.Get(config.LauncherFilename)
	if err != nil {
		return err
	}
	if contents != "" {
		return nil
	}

	if err := backend.Set(config.LauncherFilename, config.DefaultLauncherContents); err != nil {
		return err
	}

	fmt.Fprintf(cfg.Stdout, "Wrote %s\n", filepath.Join(backend.PrimaryDirectory, config.LauncherFilename))
	return nil
}
