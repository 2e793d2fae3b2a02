package lsp

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/acarl005/stripansi"
	"go.uber.org/zap"

	"github.com/nglmercer/trigger-system/internal/config"
	"github.com/nglmercer/trigger-system/internal/errors"
)

// Serve resolves the language server command and runs it attached to this
// process's stdio, forwarding SIGINT and SIGTERM to the child. The returned
// int is the server's exit code when it exited on its own; a resolution or
// spawn failure is reported as an error instead.
func Serve(root string, launcher config.Launcher, logger *zap.Logger) (int, error) {
	command, err := Resolve(root, launcher)
	if err != nil {
		logger.Error("resolution failed", zap.Error(err))
		return 0, err
	}

	logger.Info("starting language server",
		zap.String("root", root),
		zap.Strings("searched", searchedCandidates(root, launcher.Server.Path)),
		zap.String("interpreter", command.Path),
		zap.Strings("args", command.Args),
	)

	code, err := runServer(command, logger)
	if err != nil {
		logger.Error("language server failed", zap.Error(err))
		return code, err
	}

	logger.Info("language server exited", zap.Int("code", code))
	return code, nil
}

func runServer(command Command, logger *zap.Logger) (int, error) {
	cmd := exec.Command(command.Path, command.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if logger.Core().Enabled(zap.InfoLevel) {
		cmd.Stderr = io.MultiWriter(os.Stderr, &stderrMirror{logger: logger})
	}
	if len(command.Env) > 0 {
		cmd.Env = append(os.Environ(), command.ExtraEnviron()...)
	}

	if err := cmd.Start(); err != nil {
		return 0, errors.Wrap(err, "unable to start language server")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for sig := range sigCh {
			logger.Info("forwarding signal", zap.String("signal", sig.String()))
			_ = cmd.Process.Signal(sig)
		}
	}()

	err := cmd.Wait()
	signal.Stop(sigCh)
	close(sigCh)

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return 0, errors.Wrap(err, "language server exited unexpectedly")
	}

	return 0, nil
}

// stderrMirror copies whole lines of server stderr into the log with ANSI
// escapes removed. Partial lines are held until their newline arrives.
type stderrMirror struct {
	logger *zap.Logger
	buf    bytes.Buffer
}

func (m *stderrMirror) Write(p []byte) (int, error) {
	m.buf.Write(p)

	for {
		line, err := m.buf.ReadString('\n')
		if err != nil {
			m.buf.WriteString(line)
			break
		}
		m.logger.Info("server stderr", zap.String("line", stripansi.Strip(strings.TrimRight(line, "\r\n"))))
	}

	return len(p), nil
}
