package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kwachira/walletctl/internal/cli"
	"github.com/kwachira/walletctl/internal/resource"
)

func loginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the wallet backend",
		Long:  `Exchange your credentials for a session token. The token persists until logout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			if email == "" {
				email, err = promptLine("Email: ")
				if err != nil {
					return err
				}
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			if err := application.service.Login(ctx, resource.Credentials{
				Email:    email,
				Password: password,
			}); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Signed in as " + email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (prompted if omitted)")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			if err := application.service.Logout(ctx); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}
			return nil
		},
	}
}

func signupCmd() *cobra.Command {
	var (
		name  string
		email string
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new wallet account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			if name == "" {
				name, err = promptLine("Name: ")
				if err != nil {
					return err
				}
			}
			if email == "" {
				email, err = promptLine("Email: ")
				if err != nil {
					return err
				}
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			if err := application.service.Signup(ctx, resource.SignupInput{
				Name:     name,
				Email:    email,
				Password: password,
			}); err != nil {
				return fmt.Errorf("signup failed: %w", err)
			}

			fmt.Println(cli.FormatInfo("Run 'walletctl login' to sign in."))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (prompted if omitted)")
	cmd.Flags().StringVar(&email, "email", "", "account email (prompted if omitted)")

	return cmd
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			application, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer application.Close()

			profile, err := application.service.Profile(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch profile: %w", err)
			}

			fmt.Printf("%s <%s>\n", profile.Name, profile.Email)
			return nil
		},
	}
}

// promptLine reads one line of input from the terminal.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing it.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}
