package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "creditref/internal/jwt_token"
	"creditref/internal/platform/config"
)

func newTokenCmd() *cobra.Command {
	var (
		subject  string
		clientID string
		ttl      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with JWT_SIGNING_KEY",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			token, err := jwttoken.NewSigner(cfg.JWTSigningKey).Issue(subject, clientID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "local-dev", "token subject")
	cmd.Flags().StringVar(&clientID, "client", "creditref-cli", "client ID claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
