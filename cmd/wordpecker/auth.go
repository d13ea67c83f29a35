package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iremert/wordpecker/internal/auth"
)

func newAuthCommand() *cobra.Command {
	authCommand := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}
	authCommand.AddCommand(newAuthTokenCommand())
	return authCommand
}

func newAuthTokenCommand() *cobra.Command {
	var lifetime time.Duration
	command := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue a signed token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return fmt.Errorf("auth.jwt_secret (WORDPECKER_JWT_SECRET) is required to issue tokens")
			}

			token, err := auth.IssueToken(args[0], cfg.Auth.JWTSecret, clock(), lifetime)
			if err != nil {
				return fmt.Errorf("auth.IssueToken() > %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	command.Flags().DurationVar(&lifetime, "ttl", 30*24*time.Hour, "token lifetime")
	return command
}
