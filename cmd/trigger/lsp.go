package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/nglmercer/trigger-system/internal/cli"
	"github.com/nglmercer/trigger-system/internal/config"
	"github.com/nglmercer/trigger-system/internal/errors"
	"github.com/nglmercer/trigger-system/internal/lsp"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	DoctorFailure = errors.Wrap(HandledError, "doctor failure")

	LspDirectory string
	LspLogFile   string
	LspOutput    string

	lspCmd = &cobra.Command{
		Use:   "lsp",
		Short: "LSP (Language Server Protocol) related commands",
	}

	lspServeCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the Trigger System language server",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, launcher, err := loadLauncherContext()
			if err != nil {
				return err
			}

			logger, err := lsp.NewLogger(LspLogFile)
			if err != nil {
				return err
			}

			exitCode, err := lsp.Serve(root, launcher, logger)
			_ = logger.Sync()
			if err != nil {
				return err
			}

			os.Exit(exitCode)
			return nil
		},
	}

	lspResolveCmd = &cobra.Command{
		Use:   "resolve",
		Short: "Print the command that starts the language server",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := lsp.NewResolveOutputFormat(LspOutput)
			if err != nil {
				return err
			}

			root, launcher, err := loadLauncherContext()
			if err != nil {
				return err
			}

			command, err := lsp.Resolve(root, launcher)
			if err != nil {
				return err
			}

			return lsp.WriteCommand(os.Stdout, format, command)
		},
	}

	lspDoctorCmd = &cobra.Command{
		Use:   "doctor",
		Short: "Check that the language server can start",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := lsp.NewDoctorOutputFormat(LspOutput)
			if err != nil {
				return err
			}

			root, launcher, err := loadLauncherContext()
			if err != nil {
				return err
			}

			// The report is buffered so the spinner never interleaves with it.
			var report bytes.Buffer
			stop := cli.Spin("Checking the language server setup", term.IsTerminal(int(os.Stderr.Fd())), os.Stderr)
			result, err := lsp.Doctor(lsp.DoctorConfig{Root: root, OutputFormat: format}, launcher, &report)
			stop()
			if err != nil {
				return err
			}

			fmt.Print(report.String())

			if !result.Healthy {
				return DoctorFailure
			}

			return nil
		},
	}
)

func addProjectDirFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&LspDirectory, "dir", "d", "", "the directory of the Trigger System project. By default, the CLI traverses up until it finds `vscode-extension`, `trigger.yaml`, or `.trigger`.")
}

func loadLauncherContext() (string, config.Launcher, error) {
	root, err := cli.FindProjectRoot(LspDirectory)
	if err != nil {
		return "", config.Launcher{}, err
	}

	backend, err := cli.LauncherSettingsBackend(root)
	if err != nil {
		return "", config.Launcher{}, err
	}

	launcher, err := config.LoadLauncher(root, backend)
	if err != nil {
		return "", config.Launcher{}, err
	}

	return root, launcher, nil
}

func init() {
	lspCmd.AddCommand(lspServeCmd)
	lspCmd.AddCommand(lspResolveCmd)
	lspCmd.AddCommand(lspDoctorCmd)

	addProjectDirFlag(lspServeCmd)
	addProjectDirFlag(lspResolveCmd)
	addProjectDirFlag(lspDoctorCmd)

	lspServeCmd.Flags().StringVar(&LspLogFile, "log-file", "", "append launch diagnostics to this file as JSON, keeping stdio free for the protocol")

	lspResolveCmd.Flags().StringVarP(&LspOutput, "output", "o", "text", "output format: text, json, shell")
	lspDoctorCmd.Flags().StringVarP(&LspOutput, "output", "o", "text", "output format: text, json")
}
