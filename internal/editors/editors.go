// Package editors renders and installs the per-editor configuration that
// points an editor at the Trigger System language server launcher.
package editors

import (
	"github.com/nglmercer/trigger-system/internal/errors"
)

type Editor int

const (
	Zed Editor = iota
	VSCode
	Helix
	Neovim
)

// Names lists the supported editors in the order they are offered.
func Names() []string {
	return []string{"zed", "vscode", "helix", "neovim"}
}

func New(name string) (Editor, error) {
	switch name {
	case "zed":
		return Zed, nil
	case "vscode":
		return VSCode, nil
	case "helix":
		return Helix, nil
	case "neovim":
		return Neovim, nil
	default:
		return 0, errors.New("unknown editor, expected one of: zed, vscode, helix, neovim")
	}
}

func (e Editor) String() string {
	switch e {
	case Zed:
		return "zed"
	case VSCode:
		return "vscode"
	case Helix:
		return "helix"
	case Neovim:
		return "neovim"
	}
	return "unknown"
}
