package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kwachira/walletctl/internal/query"
	"github.com/kwachira/walletctl/internal/resource"
	"github.com/kwachira/walletctl/internal/stream"
)

// DashboardConfig holds everything the dashboard needs to run.
type DashboardConfig struct {
	Source  DataSource
	Cache   *query.Cache
	Channel *stream.Channel // optional; nil disables live updates
}

// RunDashboard runs the dashboard until the user quits or ctx is canceled.
// While it runs, changes to the notifications cache, including those pushed
// through the live channel, re-render without user input.
func RunDashboard(ctx context.Context, cfg DashboardConfig) error {
	if cfg.Source == nil {
		return fmt.Errorf("data source is required")
	}
	if cfg.Cache == nil {
		return fmt.Errorf("cache is required")
	}

	program := tea.NewProgram(newModel(cfg.Source, cfg.Cache), tea.WithContext(ctx))

	unsubscribe := cfg.Cache.Subscribe(resource.KeyNotifications, func() {
		program.Send(notificationsChangedMsg{})
	})
	defer unsubscribe()

	if cfg.Channel != nil {
		go func() { _ = cfg.Channel.Run(ctx) }()
		defer cfg.Channel.Close()
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
