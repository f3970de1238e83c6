package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "royaltyctl",
		Short:         "Operator tools for royalty settlement",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.tenantID, "tenant", "", "Brand (tenant) id; defaults to DEMO_BRAND_ID")
	rootCmd.PersistentFlags().BoolVar(&ctx.jsonOutput, "json", false, "Print JSON instead of tables")

	rootCmd.AddCommand(newPreviewCommand(ctx))
	rootCmd.AddCommand(newBalanceCommand(ctx))
	rootCmd.AddCommand(newReadyPayoutsCommand(ctx))

	return rootCmd
}
