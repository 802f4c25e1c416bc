package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/xtermng/internal/config"
	"github.com/xonecas/xtermng/internal/constants"
	"github.com/xonecas/xtermng/internal/icon"
	"github.com/xonecas/xtermng/internal/router"
	"github.com/xonecas/xtermng/internal/shell"
	"github.com/xonecas/xtermng/internal/terminal"
	"github.com/xonecas/xtermng/internal/theme"
	"github.com/xonecas/xtermng/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "xtermng: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logFile, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	loadIcon(cfg)

	argv, err := shell.Resolve(cfg.Terminal.Shell, os.Getenv)
	if err != nil {
		return err
	}
	dir, err := cfg.Terminal.WorkingDirOrDefault()
	if err != nil {
		return err
	}
	rt, err := router.New(constants.PaneCount, cfg.Zoom.StepOrDefault(), cfg.Zoom.DefaultOrDefault())
	if err != nil {
		return err
	}

	events := make(chan tea.Msg, constants.PaneCount*4)
	hosts, err := spawnPanes(terminal.Create, terminal.Options{
		Argv:   argv,
		Dir:    dir,
		Term:   cfg.Terminal.TermOrDefault(),
		Width:  (constants.InitialWidth - (constants.PaneCount - 1)) / constants.PaneCount,
		Height: constants.InitialHeight - 1,
		Zoom:   rt.Initial().Zoom,
		Events: events,
	})
	if err != nil {
		log.Error().Err(err).Msg("spawn failed")
		return err
	}
	defer closeAll(hosts)

	panes := make([]tui.Pane, len(hosts))
	for i, h := range hosts {
		panes[i] = h
	}
	model, err := tui.New(panes, tui.Options{
		Title:   cfg.UI.TitleOrDefault(),
		Palette: theme.ThemePalette(cfg.UI.ThemeOrDefault()),
		Router:  rt,
		Events:  events,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	log.Info().Msg("shutdown")
	return nil
}

// setupLogging points the global logger at the log file under the data dir.
// The terminal belongs to the UI, so nothing is logged to stderr.
func setupLogging(cfg *config.Config) (*os.File, error) {
	if _, err := config.EnsureDataDir(); err != nil {
		return nil, err
	}
	path, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	zerolog.SetGlobalLevel(cfg.Log.LevelOrDefault())
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

// loadIcon checks the application icon. A missing icon is normal; a bad one
// is logged and ignored.
func loadIcon(cfg *config.Config) {
	path, err := cfg.IconPath()
	if err != nil {
		log.Warn().Err(err).Msg("icon path")
		return
	}
	ic, err := icon.Load(path)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("path", path).Msg("icon not usable")
	case ic == nil:
		log.Debug().Str("path", path).Msg("no icon")
	default:
		log.Info().Str("path", ic.Path).Str("mime", ic.MIME).Int64("size", ic.Size).Msg("icon loaded")
	}
}

// spawnPanes creates one host per pane with create. On failure the hosts
// already running are closed and the error reads "spawn failed: ...".
func spawnPanes(create func(terminal.Options) (*terminal.Host, error), opts terminal.Options) ([]*terminal.Host, error) {
	hosts := make([]*terminal.Host, 0, constants.PaneCount)
	for i := range constants.PaneCount {
		opts.Index = i
		h, err := create(opts)
		if err != nil {
			closeAll(hosts)
			return nil, fmt.Errorf("spawn failed: %w", err)
		}
		hosts = append(hosts, h)
	}
	return hosts, nil
}

func closeAll(hosts []*terminal.Host) {
	for _, h := range hosts {
		if err := h.Close(); err != nil {
			log.Debug().Err(err).Str("pane_id", h.ID()).Msg("close pane")
		}
	}
}
