package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/buildprofile/buildprofile/internal/infrastructure/system"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-validate build profiles whenever buildprofile.json changes",
		Args:  cobra.NoArgs,
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			// Each run gets a fresh reader so the edited document is re-read.
			validateOnce := func(runCtx context.Context) {
				report, err := ctx.Container.NewProfileReader().ValidateAll(runCtx)
				if err != nil {
					ctx.Logger.Error("validation failed", "error", err)
					return
				}
				report.ConfigPath = ctx.Container.ConfigPath()
				if err := writeReport(ctx, out, report); err != nil && !errors.Is(err, errProblemsFound) {
					ctx.Logger.Error("failed to write report", "error", err)
				}
			}

			validateOnce(ctx.Context)
			return ctx.Container.NewWatcher().Run(ctx.Context, validateOnce)
		}),
	}

	cmd.Flags().Duration("debounce", system.DefaultSettings().WatchDebounce, "quiet period before re-validating")
	if err := viper.BindPFlag(system.KeyWatchDebounce, cmd.Flags().Lookup("debounce")); err != nil {
		panic(err)
	}
	return cmd
}

func init() {
	rootCmd.AddCommand(newWatchCmd())
}
