package terminal

// OutputMsg reports that a pane parsed new output and should be repainted.
// At most one is outstanding per host; the receiver re-arms it with Refresh.
type OutputMsg struct {
	Pane int
}

// ExitedMsg reports that a pane's child process exited, with any status.
type ExitedMsg struct {
	Pane int
	Err  error
}
