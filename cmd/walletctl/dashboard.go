package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kwachira/walletctl/internal/stream"
	"github.com/kwachira/walletctl/internal/tui"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Open the full-screen dashboard: accounts, the active budget, recent
transactions, and notifications, with live updates pushed from the backend.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			// The live channel needs the user id; fetching the profile also
			// confirms the session is valid before entering the alt screen.
			profile, err := application.service.Profile(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch profile (are you logged in?): %w", err)
			}

			var channel *stream.Channel
			endpoint, err := stream.EndpointURL(viper.GetString("api.base_url"), profile.ID)
			if err != nil {
				slog.Warn("Live updates disabled", "error", err)
			} else {
				channel, err = stream.NewChannel(endpoint, application.service.RefetchNotifications)
				if err != nil {
					slog.Warn("Live updates disabled", "error", err)
				}
			}

			watcher, err := application.client.OfflineWatcher(30 * time.Second)
			if err == nil {
				go watcher.Watch(ctx)
			}

			return tui.RunDashboard(ctx, tui.DashboardConfig{
				Source:  application.service,
				Cache:   application.cache,
				Channel: channel,
			})
		},
	}
}
