package cmd

import (
	"fmt"
	"time"

	"category-services-backend/config"
	"category-services-backend/utils"

	"github.com/spf13/cobra"
)

var tokenExpiresIn time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token for the configured admin",
	Long:  `Issues a signed admin token with JWT_SECRET, for calling the API without going through the login endpoint.`,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenExpiresIn, "expires-in", 0, "Token lifetime (defaults to JWT_EXPIRES_IN)")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ttl := cfg.JWTExpiresIn
	if tokenExpiresIn > 0 {
		ttl = tokenExpiresIn
	}

	token, err := utils.NewCredentialGate([]byte(cfg.JWTSecret), ttl).Issue(cfg.AdminEmail)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
