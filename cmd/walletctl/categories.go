package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kwachira/walletctl/internal/cli"
	"github.com/kwachira/walletctl/internal/resource"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage transaction categories",
		Long:  `List, add, and delete the categories transactions are tagged with, including their sub-categories.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())
	cmd.AddCommand(subCategoriesCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories with their sub-categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			categories, err := application.service.Categories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'walletctl categories add' to create one."))
				return nil
			}

			for _, detail := range categories {
				fmt.Printf("%s %s\n",
					cli.BoldStyle.Render(detail.Category.Name),
					cli.SubtleStyle.Render("("+detail.Category.ID+")"))
				if detail.Category.Description != "" {
					fmt.Printf("  %s\n", detail.Category.Description)
				}
				for _, sub := range detail.SubCategories {
					fmt.Printf("  - %s %s\n", sub.Name, cli.SubtleStyle.Render("("+sub.ID+")"))
				}
			}

			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.service.AddCategory(ctx, resource.AddCategoryInput{
				Name:        args[0],
				Description: description,
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "category description")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.service.DeleteCategory(ctx, args[0])
		},
	}
}

func subCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sub",
		Short: "Manage sub-categories",
	}

	cmd.AddCommand(listSubCategoriesCmd())
	cmd.AddCommand(addSubCategoryCmd())
	cmd.AddCommand(deleteSubCategoryCmd())

	return cmd
}

func listSubCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all sub-categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			subCategories, err := application.service.SubCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get sub-categories: %w", err)
			}

			if len(subCategories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No sub-categories found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Category"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 8),
				strings.Repeat("-", 20),
				strings.Repeat("-", 20))

			for _, detail := range subCategories {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					detail.SubCategory.ID, detail.SubCategory.Name, detail.Category.Name)
			}

			return nil
		},
	}
}

func addSubCategoryCmd() *cobra.Command {
	var (
		description string
		categoryID  string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new sub-category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.service.AddSubCategory(ctx, resource.AddSubCategoryInput{
				Name:        args[0],
				Description: description,
				CategoryID:  categoryID,
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "sub-category description")
	cmd.Flags().StringVar(&categoryID, "category", "", "parent category id")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func deleteSubCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a sub-category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.service.DeleteSubCategory(ctx, args[0])
		},
	}
}
