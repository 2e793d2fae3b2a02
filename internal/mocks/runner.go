package mocks

import (
	"github.com/nglmercer/trigger-system/internal/errors"
)

type CommandRunner struct {
	MockOutput func(name string, args ...string) ([]byte, error)
}

func (r *CommandRunner) Output(name string, args ...string) ([]byte, error) {
	if r.MockOutput != nil {
		return r.MockOutput(name, args...)
	}

	return nil, errors.New("MockOutput was not configured")
}
