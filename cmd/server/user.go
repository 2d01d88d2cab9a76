package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/iudanet/starmap/internal/server/service"
)

func (a *app) newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts directly in the database",
	}

	cmd.AddCommand(a.newUserAddCmd())
	cmd.AddCommand(a.newUserPasswdCmd())

	return cmd
}

func (a *app) newUserAddCmd() *cobra.Command {
	var (
		password string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create an account",
		Example: `  starmap user add alice --role admin
  starmap user add bob --password secret1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := cfg.Log.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if password == "" {
				if password, err = promptPassword(cmd.OutOrStdout()); err != nil {
					return err
				}
			}

			users, closeFn, err := openUsers(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeFn()

			user, err := users.Create(cmd.Context(), service.CLICaller, args[0], password, role)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q (id %s)\n", user.Role, user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password (prompted if omitted)")
	cmd.Flags().StringVar(&role, "role", "player", "role: admin or player")
	storeFlags(cmd.Flags())

	return cmd
}

func (a *app) newUserPasswdCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "passwd <username>",
		Short: "Set a new password for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := cfg.Log.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if password == "" {
				if password, err = promptPassword(cmd.OutOrStdout()); err != nil {
					return err
				}
			}

			users, closeFn, err := openUsers(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := users.ResetPasswordByUsername(cmd.Context(), service.CLICaller, args[0], password); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Password updated for %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "new password (prompted if omitted)")
	storeFlags(cmd.Flags())

	return cmd
}

// promptPassword читает пароль с терминала без эха и просит подтверждение
func promptPassword(out io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal: use --password")
	}

	fmt.Fprint(out, "Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(out, "Confirm password: ")
	confirm, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(pw) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(pw), nil
}
