package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAPIKeyCommand creates the apikey command.
func NewAPIKeyCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Provision and revoke API keys",
	}

	create := &cobra.Command{
		Use:   "create <business-id>",
		Short: "Issue a new API key",
		Long: `Issue a new API key for a business.

The raw key is printed once. Only its HMAC is stored, so it cannot be shown again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.Bootstrap(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer env.Close()

			rawKey, key, err := env.Services.APIKey.CreateAPIKey(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("create api key: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "api_key_id: %s\n", key.APIKeyID)
			fmt.Fprintf(out, "api_key:    %s\n", rawKey)
			return nil
		},
	}

	revoke := &cobra.Command{
		Use:   "revoke <api-key-id>",
		Short: "Revoke an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.Bootstrap(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.Services.APIKey.RevokeAPIKey(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("revoke api key: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revoked %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(create, revoke)
	return cmd
}
