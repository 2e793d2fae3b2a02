package lsp

import (
	"sort"

	"al.essio.dev/pkg/shellescape"
)

// Command describes exactly how to start the language server: the interpreter
// to execute, its arguments in order, and extra environment variables. Env
// holds additions only; the parent environment is always inherited.
type Command struct {
	Path string            `json:"path"`
	Args []string          `json:"args"`
	Env  map[string]string `json:"env"`
}

// Argv returns the full argument vector, interpreter first.
func (c Command) Argv() []string {
	return append([]string{c.Path}, c.Args...)
}

// String renders the command as a copy-pasteable shell line, including any
// environment assignments.
func (c Command) String() string {
	words := append(c.ExtraEnviron(), c.Argv()...)
	return shellescape.QuoteCommand(words)
}

// ExtraEnviron renders Env as KEY=VALUE pairs in sorted key order.
func (c Command) ExtraEnviron() []string {
	if len(c.Env) == 0 {
		return nil
	}

	keys := make([]string, 0, len(c.Env))
	for key := range c.Env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	environ := make([]string, 0, len(keys))
	for _, key := range keys {
		environ = append(environ, key+"="+c.Env[key])
	}
	return environ
}
