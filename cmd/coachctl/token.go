package main

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"careercoach-backend/internal/shared/auth"
	"careercoach-backend/internal/shared/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an identity token signed with AUTH_JWT_SECRET",
	RunE:  runToken,
}

var (
	tokenSubject string
	tokenEmail   string
	tokenName    string
	tokenTTL     time.Duration
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "sub", "", "User id (required)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "User email")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "Display name")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("sub")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	verifier, err := auth.NewVerifier(cfg.AuthJWTSecret, cfg.Env)
	if err != nil {
		return err
	}
	claims := auth.Claims{Email: tokenEmail, Name: tokenName}
	claims.Subject = tokenSubject
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(tokenTTL))

	signed, err := verifier.Sign(claims)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), signed)
	return err
}
