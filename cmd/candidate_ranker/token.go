package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/config"
	"github.com/jonathan/candidate-ranker/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API bearer token",
	Long:  `Signs a bearer token for the API server with JWT_SECRET. The lifetime is JWT_EXPIRATION_HOURS (default 24).`,
	RunE:  runToken,
}

var (
	tokenClient string
	tokenScope  string
)

func init() {
	tokenCmd.Flags().StringVar(&tokenClient, "client", "", "Client name carried as the token subject (required)")
	tokenCmd.Flags().StringVar(&tokenScope, "scope", "", "Optional scope claim")

	if err := tokenCmd.MarkFlagRequired("client"); err != nil {
		panic(fmt.Sprintf("failed to mark client flag as required: %v", err))
	}

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(tokenClient, tokenScope)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
