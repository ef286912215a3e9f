package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kwachira/walletctl/internal/cli"
	"github.com/kwachira/walletctl/internal/model"
	"github.com/kwachira/walletctl/internal/resource"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Record and review transactions",
		Long: `Record income and expenses and review what happened. Transactions can
only be created; the backend keeps them immutable once recorded.`,
	}

	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(recentTransactionsCmd())
	cmd.AddCommand(reportTransactionsCmd())

	return cmd
}

func addTransactionCmd() *cobra.Command {
	var (
		amount          float64
		transactionType string
		accountID       string
		categoryID      string
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Record a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.service.AddTransaction(ctx, resource.AddTransactionInput{
				Amount:      amount,
				Type:        model.TransactionType(transactionType),
				Description: args[0],
				AccountID:   accountID,
				CategoryID:  categoryID,
			}, resource.Selection{AccountID: accountID})
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "transaction amount")
	cmd.Flags().StringVar(&transactionType, "type", "", "transaction type (income, expense)")
	cmd.Flags().StringVar(&accountID, "account", "", "account id")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func recentTransactionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			rows, err := application.service.RecentTransactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}

			printTransactions(rows)
			return nil
		},
	}
}

func reportTransactionsCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show transactions for a date range",
		Long:  `Show transactions filtered to a date range. Either bound may be omitted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			rows, err := application.service.TransactionReport(ctx, startDate, endDate)
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}

			printTransactions(rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "end date (YYYY-MM-DD)")

	return cmd
}

func printTransactions(rows []model.TransactionRow) {
	if len(rows) == 0 {
		fmt.Println(cli.InfoStyle.Render("No transactions found."))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("Date"),
		cli.BoldStyle.Render("Description"),
		cli.BoldStyle.Render("Account"),
		cli.BoldStyle.Render("Category"),
		cli.BoldStyle.Render("Amount"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 10),
		strings.Repeat("-", 24),
		strings.Repeat("-", 14),
		strings.Repeat("-", 14),
		strings.Repeat("-", 12))

	for _, row := range rows {
		sign := "-"
		if row.Type == model.TransactionTypeIncome {
			sign = "+"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s%.2f\n",
			row.TransactionTime.Format("2006-01-02"),
			row.Description, row.Account, row.Category,
			sign, row.Amount)
	}
}
