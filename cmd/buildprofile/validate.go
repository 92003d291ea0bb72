package main

import (
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate every build profile for every platform",
		Long: `Resolve every declared profile for android and ios and report all
problems. Exits with a non-zero status when any profile fails.`,
		Example: `  buildprofile validate
  buildprofile validate -o sarif > buildprofile.sarif`,
		Args: cobra.NoArgs,
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, _ []string) error {
			report, err := ctx.Container.NewProfileReader().ValidateAll(ctx.Context)
			if err != nil {
				return err
			}
			report.ConfigPath = ctx.Container.ConfigPath()
			return writeReport(ctx, cmd.OutOrStdout(), report)
		}),
	}
}

func init() {
	rootCmd.AddCommand(newValidateCmd())
}
