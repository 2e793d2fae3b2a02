package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/nglmercer/trigger-system/internal/cli"
	"github.com/nglmercer/trigger-system/internal/editors"
	"github.com/nglmercer/trigger-system/internal/errors"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	SetupEditor string
	SetupWrite  bool
	SetupOpen   bool

	lspSetupCmd = &cobra.Command{
		Use:   "setup",
		Short: "Configure an editor to use the language server",
		RunE: func(cmd *cobra.Command, args []string) error {
			editor, err := chooseEditor()
			if err != nil {
				return err
			}

			root, err := cli.FindProjectRoot(LspDirectory)
			if err != nil {
				return err
			}

			result, err := cli.SetupEditor(cli.SetupEditorConfig{
				Editor: editor,
				Root:   root,
				Write:  SetupWrite,
				Stdout: os.Stdout,
			})
			if err != nil {
				return err
			}

			if SetupOpen && (result.Written || result.Skipped) {
				if err := open.Run(result.Path); err != nil {
					fmt.Fprintf(os.Stderr, "Failed to open %s.\n", result.Path)
				}
			}

			return nil
		},
	}
)

// chooseEditor resolves the --editor flag, prompting interactively when it is
// not set and stdout is a terminal.
func chooseEditor() (editors.Editor, error) {
	if SetupEditor != "" {
		return editors.New(SetupEditor)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return 0, errors.Errorf("no editor specified, pass --editor with one of: %s", strings.Join(editors.Names(), ", "))
	}

	prompt := promptui.Select{
		Label: "Which editor should use the Trigger System language server",
		Items: editors.Names(),
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return 0, err
	}

	return editors.New(editors.Names()[idx])
}

func init() {
	lspCmd.AddCommand(lspSetupCmd)

	addProjectDirFlag(lspSetupCmd)
	lspSetupCmd.Flags().StringVar(&SetupEditor, "editor", "", "the editor to configure: zed, vscode, helix, neovim")
	lspSetupCmd.Flags().BoolVar(&SetupWrite, "write", false, "write the integration file instead of previewing it")
	lspSetupCmd.Flags().BoolVar(&SetupOpen, "open", false, "open the integration file after writing it")
}
