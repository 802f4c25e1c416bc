package terminal

import (
	"fmt"
	"strings"
)

// SpawnError reports that a pane's shell could not be started.
type SpawnError struct {
	Pane int
	Argv []string
	Dir  string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("pane %d: spawn %q in %s: %v", e.Pane, strings.Join(e.Argv, " "), e.Dir, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }
