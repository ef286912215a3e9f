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

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage wallet accounts",
		Long:  `List, add, and delete the accounts money moves through: mobile money, cash, bank, and savings.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(addAccountCmd())
	cmd.AddCommand(deleteAccountCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			accounts, err := application.service.Accounts(ctx)
			if err != nil {
				return fmt.Errorf("failed to get accounts: %w", err)
			}

			if len(accounts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No accounts found. Use 'walletctl accounts add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Type"),
				cli.BoldStyle.Render("Balance"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 8),
				strings.Repeat("-", 20),
				strings.Repeat("-", 8),
				strings.Repeat("-", 12))

			for _, account := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n",
					account.ID, account.Name, account.Type, account.Balance)
			}

			return nil
		},
	}
}

func addAccountCmd() *cobra.Command {
	var (
		accountType string
		balance     float64
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new account",
		Long:  `Create an account with an opening balance. Type must be one of momo, cash, bank, saving.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.service.AddAccount(ctx, resource.AddAccountInput{
				Name:    args[0],
				Type:    model.AccountType(accountType),
				Balance: balance,
			})
		},
	}

	cmd.Flags().StringVar(&accountType, "type", "", "account type (momo, cash, bank, saving)")
	cmd.Flags().Float64Var(&balance, "balance", 0, "opening balance")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("balance")

	return cmd
}

func deleteAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.service.DeleteAccount(ctx, args[0])
		},
	}
}
