package main

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kwachira/walletctl/internal/cli"
	"github.com/kwachira/walletctl/internal/resource"
)

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-fetch every resource from the backend",
		Long:  `Warm the local cache by fetching every resource fresh. Useful after changes made from another device.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			steps := []struct {
				name string
				run  func(context.Context) error
			}{
				{"profile", func(ctx context.Context) error {
					_, err := application.service.Profile(ctx)
					return err
				}},
				{"accounts", func(ctx context.Context) error {
					_, err := application.service.Accounts(ctx)
					return err
				}},
				{"categories", func(ctx context.Context) error {
					_, err := application.service.Categories(ctx)
					return err
				}},
				{"sub-categories", func(ctx context.Context) error {
					_, err := application.service.SubCategories(ctx)
					return err
				}},
				{"budgets", func(ctx context.Context) error {
					_, err := application.service.Budgets(ctx, resource.Selection{})
					return err
				}},
				{"transactions", func(ctx context.Context) error {
					_, err := application.service.RecentTransactions(ctx)
					return err
				}},
				{"notifications", func(ctx context.Context) error {
					_, err := application.service.Notifications(ctx)
					return err
				}},
			}

			bar := progressbar.NewOptions(len(steps),
				progressbar.OptionSetDescription("Refreshing"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			for _, step := range steps {
				if err := step.run(ctx); err != nil {
					_ = bar.Clear()
					return fmt.Errorf("failed to refresh %s: %w", step.name, err)
				}
				_ = bar.Add(1)
			}

			fmt.Println(cli.FormatSuccess("All resources refreshed"))
			return nil
		},
	}
}
