package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nekogravitycat/freight-booking-backend/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token <client-id>",
	Short: "Issue an access token for an API client",
	Args:  cobra.ExactArgs(1),
	RunE:  runToken,
}

var (
	tokenTTL    time.Duration
	tokenScopes []string
)

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
	tokenCmd.Flags().StringSliceVar(&tokenScopes, "scope", nil, "granted scope, repeatable (e.g. "+auth.ScopeBookingWrite+")")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return errors.New("JWT_SECRET is required")
	}

	token, err := auth.NewJWTManager(secret, tokenTTL).GenerateAccessToken(args[0], tokenScopes...)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
