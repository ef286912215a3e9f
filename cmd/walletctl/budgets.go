package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kwachira/walletctl/internal/cli"
	"github.com/kwachira/walletctl/internal/resource"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage spending budgets",
		Long: `Show and create budgets. A budget is either overall or scoped to one
account; at most one budget may be active per scope at a time.`,
	}

	cmd.AddCommand(showBudgetCmd())
	cmd.AddCommand(addBudgetCmd())

	return cmd
}

func showBudgetCmd() *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active budget",
		Long:  `Show the active budget for the overall scope, or for one account with --account.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			budgets, err := application.service.Budgets(ctx, resource.Selection{AccountID: accountID})
			if err != nil {
				return fmt.Errorf("failed to get budgets: %w", err)
			}

			if len(budgets) == 0 {
				fmt.Println(cli.InfoStyle.Render("No active budget for this scope."))
				return nil
			}

			for _, budget := range budgets {
				fmt.Printf("%s  %.2f spent of %.2f (%.2f left)\n",
					cli.BoldStyle.Render(string(budget.Type)),
					budget.Amount, budget.Limit, budget.Remaining())
				fmt.Printf("  %s → %s\n",
					budget.StartDate.Format("2006-01-02"),
					budget.EndDate.Format("2006-01-02"))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account id (omit for the overall budget)")

	return cmd
}

func addBudgetCmd() *cobra.Command {
	var (
		accountID string
		limit     float64
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a budget",
		Long: `Create a budget for the overall scope, or for one account with --account.
Creation is refused locally while the scope already has an active budget.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			sel := resource.Selection{AccountID: accountID}

			// Mirror the backend's one-active-budget-per-scope rule before
			// the round trip.
			existing, err := application.service.Budgets(ctx, sel)
			if err != nil {
				return fmt.Errorf("failed to check active budgets: %w", err)
			}
			if len(existing) > 0 {
				return fmt.Errorf("this scope already has an active budget; wait for it to end before adding another")
			}

			start, err := time.Parse("2006-01-02", startDate)
			if err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}
			end, err := time.Parse("2006-01-02", endDate)
			if err != nil {
				return fmt.Errorf("invalid end date: %w", err)
			}

			return application.service.AddBudget(ctx, resource.AddBudgetInput{
				Limit:     limit,
				StartDate: start,
				EndDate:   end,
			}, sel)
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account id (omit for an overall budget)")
	cmd.Flags().Float64Var(&limit, "limit", 0, "spending limit")
	cmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("limit")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
