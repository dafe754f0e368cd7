package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an admin JWT for corpus reloads",
	Long:  "Sign a token with auth.jwt_secret (or JWT_SECRET) that authorizes POST /corpus/reload.",
	RunE:  runToken,
}

var tokenSubject string

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "operator", "Token subject recorded in the claims")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig("")
	if err != nil {
		return err
	}
	jwtCfg, err := cfg.JWT()
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(tokenSubject)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
