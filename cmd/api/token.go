package main

import (
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

// newTokenCmd mints a bearer token signed with JWT_SECRET, for local
// development against the API.
func newTokenCmd() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed development token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			token, err := signToken(cfg.JWTSecret, subject, role, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "sub", "", "employee or company id")
	cmd.Flags().StringVar(&role, "role", domain.RoleEmployee, "employee, company or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}

func signToken(secret, subject, role string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET is not configured")
	}
	switch role {
	case domain.RoleEmployee, domain.RoleCompany, domain.RoleAdmin:
	default:
		return "", fmt.Errorf("unknown role %q", role)
	}

	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
