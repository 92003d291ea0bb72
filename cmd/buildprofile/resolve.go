package main

import (
	"github.com/spf13/cobra"

	"github.com/buildprofile/buildprofile/internal/application/dto"
	"github.com/buildprofile/buildprofile/internal/domain/entities"
)

func newResolveCmd() *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "resolve <profile>",
		Short: "Print a fully resolved build profile",
		Long: `Resolve a build profile for one or all platforms: extends chains are
followed, platform overrides applied, defaults filled in and the result
validated before it is printed.`,
		Example: `  buildprofile resolve release --platform android
  buildprofile resolve preview --platform all -o json`,
		Args: cobra.ExactArgs(1),
		RunE: withContainer(func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			platforms, err := parsePlatforms(platform)
			if err != nil {
				return err
			}
			req := dto.ResolveRequest{ProfileName: args[0], Platforms: platforms}

			reader := ctx.Container.NewProfileReader()

			var profiles []*entities.ResolvedProfile
			if len(req.Platforms) == 1 {
				p, err := reader.ReadBuildProfile(ctx.Context, req.ProfileName, req.Platforms[0])
				if err != nil {
					return err
				}
				profiles = []*entities.ResolvedProfile{p}
			} else {
				profiles, err = reader.ResolveAll(ctx.Context, req.ProfileName, req.Platforms)
				if err != nil {
					return err
				}
			}

			return writeProfiles(ctx, cmd.OutOrStdout(), profiles)
		}),
	}

	cmd.Flags().StringVar(&platform, "platform", "all", platformFlagUsage)
	return cmd
}

func init() {
	rootCmd.AddCommand(newResolveCmd())
}
