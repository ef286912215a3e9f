package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kwachira/walletctl/internal/cli"
)

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Review notifications",
		Long:  `List notifications, mark them read, and delete them. New ones arrive live on the dashboard.`,
	}

	cmd.AddCommand(listNotificationsCmd())
	cmd.AddCommand(readNotificationCmd())
	cmd.AddCommand(deleteNotificationCmd())

	return cmd
}

func listNotificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			notifications, err := application.service.Notifications(ctx)
			if err != nil {
				return fmt.Errorf("failed to get notifications: %w", err)
			}

			if len(notifications) == 0 {
				fmt.Println(cli.InfoStyle.Render("Nothing new."))
				return nil
			}

			for _, note := range notifications {
				marker := "○"
				line := note.Message
				if !note.IsRead {
					marker = "●"
					line = cli.BoldStyle.Render(line)
				}
				fmt.Printf("%s %s %s %s\n",
					marker, line,
					cli.SubtleStyle.Render(note.CreatedAt.Format("2006-01-02 15:04")),
					cli.SubtleStyle.Render("("+note.ID+")"))
			}

			return nil
		},
	}
}

func readNotificationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a notification read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.service.MarkNotificationRead(ctx, args[0])
		},
	}
}

func deleteNotificationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.service.DeleteNotification(ctx, args[0])
		},
	}
}
