package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"scorecard/internal/domain/auth"
)

func newTokenCmd() *cobra.Command {
	var (
		userID   string
		tenantID string
		role     string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd.OutOrStdout(), os.Getenv("JWT_SECRET"), auth.Claims{UserID: userID, TenantID: tenantID, RoleName: role}, ttl)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User ID (required)")
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant ID (required)")
	cmd.Flags().StringVar(&role, "role", auth.RoleManager, "Role name")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}

func runToken(out io.Writer, secret string, claims auth.Claims, ttl time.Duration) error {
	if secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	token, err := auth.GenerateToken(secret, claims, ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
