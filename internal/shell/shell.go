// Package shell resolves which shell each pane spawns.
package shell

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xonecas/xtermng/internal/constants"
	shfields "mvdan.cc/sh/v3/shell"
)

// ErrEmpty is returned when a shell command line expands to no words.
var ErrEmpty = errors.New("shell command is empty")

// Resolve returns the argv to spawn in a pane. The configured command line
// wins, then $SHELL, then constants.DefaultShell. Command lines are split
// with POSIX quoting rules and $VAR references are expanded through getenv.
func Resolve(configured string, getenv func(string) string) ([]string, error) {
	line := strings.TrimSpace(configured)
	if line == "" {
		line = strings.TrimSpace(getenv("SHELL"))
	}
	if line == "" {
		return []string{constants.DefaultShell}, nil
	}

	argv, err := shfields.Fields(line, getenv)
	if err != nil {
		return nil, fmt.Errorf("parse shell %q: %w", line, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%q: %w", line, ErrEmpty)
	}
	return argv, nil
}

// Name returns the display name of a resolved shell ("zsh" for "/bin/zsh -l").
func Name(argv []string) string {
	if len(argv) == 0 {
		return ""
	}
	return filepath.Base(argv[0])
}
