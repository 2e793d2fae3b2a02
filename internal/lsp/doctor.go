package lsp

import (
	"encoding/json"
	"fmt"
	"io"
	"os/exec"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/nglmercer/trigger-system/internal/config"
	"github.com/nglmercer/trigger-system/internal/errors"
	"github.com/nglmercer/trigger-system/internal/fs"
	"github.com/nglmercer/trigger-system/internal/nodeversion"
)

type DoctorOutputFormat int

const (
	DoctorOutputText DoctorOutputFormat = iota
	DoctorOutputJSON
)

func NewDoctorOutputFormat(formatString string) (DoctorOutputFormat, error) {
	switch formatString {
	case "text":
		return DoctorOutputText, nil
	case "json":
		return DoctorOutputJSON, nil
	default:
		return 0, errors.New("unknown output format, expected one of: text, json")
	}
}

// CommandRunner executes a command and returns its standard output. It exists
// so tests can stub the interpreter probe.
type CommandRunner interface {
	Output(name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

type DoctorConfig struct {
	Root         string
	OutputFormat DoctorOutputFormat
	Runner       CommandRunner
}

// DoctorReport is the result of every launch-readiness check.
type DoctorReport struct {
	Interpreter InterpreterStatus
	Bundle      BundleStatus
	Command     *Command `json:",omitempty"`
	Healthy     bool
}

type InterpreterStatus struct {
	Found     bool
	Path      string `json:",omitempty"`
	Version   string `json:",omitempty"`
	Supported bool
	Problem   string `json:",omitempty"`
}

type BundleStatus struct {
	Found      bool
	Path       string `json:",omitempty"`
	Candidates []BundleCandidate
}

type BundleCandidate struct {
	Path   string
	Exists bool
}

// Doctor runs every launch-readiness check without starting the server: the
// interpreter search plus a version probe, and the full bundle candidate
// scan. The two checks run concurrently and both always complete, so one
// failure never hides the other.
func Doctor(cfg DoctorConfig, launcher config.Launcher, stdout io.Writer) (*DoctorReport, error) {
	runner := cfg.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	report := &DoctorReport{}

	var group errgroup.Group
	group.Go(func() error {
		report.Interpreter = checkInterpreter(runner, launcher.Node.Path)
		return nil
	})
	group.Go(func() error {
		bundle, err := checkBundle(cfg.Root, launcher.Server.Path)
		if err != nil {
			return err
		}
		report.Bundle = bundle
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	report.Healthy = report.Interpreter.Found && report.Interpreter.Problem == "" && report.Bundle.Found

	if report.Interpreter.Found && report.Bundle.Found {
		command := composeCommand(report.Interpreter.Path, report.Bundle.Path, launcher)
		report.Command = &command
	}

	if err := outputDoctorReport(stdout, cfg.OutputFormat, report); err != nil {
		return nil, errors.Wrap(err, "unable to output doctor report")
	}

	return report, nil
}

func checkInterpreter(runner CommandRunner, configured string) InterpreterStatus {
	path, err := findInterpreter(configured)
	if err != nil {
		return InterpreterStatus{Problem: err.Error()}
	}

	status := InterpreterStatus{Found: true, Path: path}

	output, err := runner.Output(path, "--version")
	if err != nil {
		status.Problem = fmt.Sprintf("unable to run %s --version: %v", path, err)
		return status
	}

	version, err := nodeversion.Parse(string(output))
	if err != nil {
		status.Problem = err.Error()
		return status
	}

	status.Version = version.String()
	status.Supported = nodeversion.Supported(version)
	if !status.Supported {
		status.Problem = fmt.Sprintf("node %s is older than the minimum supported %s", version, nodeversion.MinimumSupported)
	}

	return status
}

func checkBundle(root string, configured string) (BundleStatus, error) {
	status := BundleStatus{}

	for _, candidate := range searchedCandidates(root, configured) {
		exists, err := fs.Exists(candidate)
		if err != nil {
			return status, errors.Wrapf(err, "unable to check %q", candidate)
		}

		status.Candidates = append(status.Candidates, BundleCandidate{Path: candidate, Exists: exists})
		if exists && !status.Found {
			status.Found = true
			status.Path = candidate
		}
	}

	return status, nil
}

func outputDoctorReport(w io.Writer, format DoctorOutputFormat, report *DoctorReport) error {
	switch format {
	case DoctorOutputText:
		return outputDoctorText(w, report)
	case DoctorOutputJSON:
		return json.NewEncoder(w).Encode(report)
	}
	return nil
}

func outputDoctorText(w io.Writer, report *DoctorReport) error {
	good := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	fmt.Fprintln(w, "Node.js interpreter")
	switch {
	case report.Interpreter.Found && report.Interpreter.Version != "":
		fmt.Fprintf(w, "  %s  %s (v%s)\n", good("found"), report.Interpreter.Path, report.Interpreter.Version)
	case report.Interpreter.Found:
		fmt.Fprintf(w, "  %s  %s\n", good("found"), report.Interpreter.Path)
	default:
		fmt.Fprintf(w, "  %s\n", bad("missing"))
	}
	if report.Interpreter.Problem != "" {
		fmt.Fprintf(w, "  %s\n", bad(report.Interpreter.Problem))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Language server bundle")
	for i, candidate := range report.Bundle.Candidates {
		state := "not found"
		if candidate.Exists {
			state = good("found")
		}
		fmt.Fprintf(w, "  %d. %s (%s)\n", i+1, candidate.Path, state)
	}
	if report.Bundle.Found {
		fmt.Fprintf(w, "  using %s\n", report.Bundle.Path)
	} else {
		fmt.Fprintf(w, "  %s\n", bad(bundleRemediation))
	}

	if report.Command != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Command")
		fmt.Fprintf(w, "  %s\n", report.Command)
	}

	fmt.Fprintln(w)
	if report.Healthy {
		fmt.Fprintln(w, good("Everything the language server needs is in place."))
	} else {
		fmt.Fprintln(w, bad("The language server cannot start until the problems above are fixed."))
	}

	return nil
}
