package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moodio/moodio-agent/internal/api"
	"github.com/moodio/moodio-agent/internal/backend"
	"github.com/moodio/moodio-agent/internal/draft"
	"github.com/moodio/moodio-agent/internal/logging"
	"github.com/moodio/moodio-agent/internal/logging/events"
	"github.com/moodio/moodio-agent/internal/menu"
	"github.com/moodio/moodio-agent/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	BackendURL   string
	APIKey       string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	DraftDir     string
	MenuConfig   string
	PollInterval time.Duration
}

// MenuLoader reads the mode tables from the configured path.
type MenuLoader func(path string) (menu.Config, error)

// MenuWatcher signals when the menu config file changes on disk.
type MenuWatcher func(ctx context.Context, path string) (<-chan struct{}, error)

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config, loadMenu MenuLoader, watchMenu MenuWatcher) error {
	client := api.NewClient(cfg.BackendURL, cfg.APIKey)

	menuCfg, err := loadMenu(cfg.MenuConfig)
	if err != nil {
		return fmt.Errorf("load menu config: %w", err)
	}

	drafts, err := draft.NewStore(cfg.DraftDir)
	if err != nil {
		return fmt.Errorf("draft store: %w", err)
	}

	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	watcher := backend.NewWatcher(client, interval)
	defer watcher.Stop()

	model := ui.NewModel(client, menuCfg, watcher, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Drafts:     drafts,
		ReloadMenu: func() (menu.Config, error) { return loadMenu(cfg.MenuConfig) },
	})
	program := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.MenuConfig != "" && watchMenu != nil {
		changes, err := watchMenu(ctx, cfg.MenuConfig)
		if err != nil {
			logging.Error(fmt.Errorf("menu config watch: %w", err))
		} else {
			go forwardMenuReloads(program, changes, cfg.MenuConfig, loadMenu)
		}
	}

	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func forwardMenuReloads(program *tea.Program, changes <-chan struct{}, path string, loadMenu MenuLoader) {
	for range changes {
		menuCfg, err := loadMenu(path)
		if err != nil {
			events.Menu.ConfigError(path, err)
			program.Send(ui.MenuConfigReloadMsg{Err: err})
			continue
		}
		events.Menu.ConfigReload(path)
		program.Send(ui.MenuConfigReloadMsg{Config: menuCfg})
	}
}
