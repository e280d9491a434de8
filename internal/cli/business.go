package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewBusinessCommand creates the business command.
func NewBusinessCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "business",
		Short: "Manage tenants",
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a business and print its ID",
		Example: `  ledgerctl business create "Acme Ltd"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.Bootstrap(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer env.Close()

			biz, err := env.Services.Business.CreateBusiness(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("create business: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), biz.BusinessID)
			return nil
		},
	}
	cmd.AddCommand(create)

	return cmd
}
