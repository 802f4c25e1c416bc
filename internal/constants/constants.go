// Package constants holds process-wide fixed values.
package constants

// AppName is used for the window title and the log/config directory.
const AppName = "XtermNG"

// Zoom levels are multiplicative font-scale factors shared by every pane.
const (
	ZoomStep    = 0.1
	DefaultZoom = 1.0
)

// MinZoomStep is the finest zoom increment. Zoom levels are kept on a
// grid of this size, so a smaller step would never change the level.
const MinZoomStep = 0.001

// DefaultShell is spawned when neither the config nor $SHELL name one.
const DefaultShell = "/bin/bash"

// DefaultTerm is exported to children as TERM.
const DefaultTerm = "xterm-256color"

// PaneCount is the number of terminal panes laid out side by side.
const PaneCount = 2

// MaxGrid bounds the emulated grid in either dimension. Small zoom levels
// would otherwise ask the emulator for thousands of columns.
const MaxGrid = 512

// DataDirName is the per-user directory under $HOME holding config, log and icon.
const DataDirName = ".xtermng"

// Icon path components relative to the data directory.
const (
	IconDir  = "icon"
	IconFile = "xtermng.png"
)

// Window size assumed until the first resize event arrives.
const (
	InitialWidth  = 80
	InitialHeight = 24
)
