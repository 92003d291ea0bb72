package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/buildprofile/buildprofile/internal/application/dto"
	"github.com/buildprofile/buildprofile/internal/domain/services"
)

func newListCmd() *cobra.Command {
	var req dto.ListRequest
	var platform string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the declared build profiles",
		Long: `List build profile names in sorted order. With --filter, each profile is
resolved for --platform and kept when the expression is true. Expressions
can use name, platform, distribution, credentialsSource, developmentClient,
node, buildType, env and cacheDisabled.`,
		Example: `  buildprofile list
  buildprofile list --platform android --filter 'distribution == "internal"'`,
		Args: cobra.NoArgs,
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, _ []string) error {
			reader := ctx.Container.NewProfileReader()
			c := ctx.Container

			formatter, err := c.Formatters().CreateProfileFormatter(c.Settings().Format, cmd.OutOrStdout(), c.FormatterOptions())
			if err != nil {
				return err
			}

			if req.FilterExpression == "" {
				names, err := reader.GetBuildProfileNames(ctx.Context)
				if err != nil {
					return err
				}
				return formatter.FormatNames(names)
			}

			if platform == "" {
				return errors.New("--filter requires --platform")
			}
			req.Platform, err = parseSinglePlatform(platform)
			if err != nil {
				return err
			}

			filter, err := services.NewProfileFilter(req.FilterExpression)
			if err != nil {
				return err
			}

			names, err := reader.FilterProfiles(ctx.Context, filter, req.Platform)
			if err != nil {
				return err
			}
			return formatter.FormatNames(names)
		}),
	}

	cmd.Flags().StringVar(&platform, "platform", "", "platform to resolve profiles for when filtering: android or ios")
	cmd.Flags().StringVar(&req.FilterExpression, "filter", "", "expression selecting profiles by their resolved fields")
	return cmd
}

func init() {
	rootCmd.AddCommand(newListCmd())
}
