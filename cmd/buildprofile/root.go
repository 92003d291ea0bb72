package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/buildprofile/buildprofile/internal/infrastructure/system"
)

const envPrefix = "BUILDPROFILE"

var (
	cfgFile string
	verbose bool
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "buildprofile",
	Short: "Resolve and validate build profiles",
	Long: `buildprofile reads the build profiles declared in a project's
buildprofile.json, resolves extends inheritance and platform overrides,
and prints the fully resolved configuration for a profile and platform.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.buildprofile.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.StringP("project-dir", "p", ".", "project directory containing buildprofile.json")
	flags.StringP("format", "o", "table", "output format: table, json, yaml, sarif (validate only)")
	flags.Bool("fail-fast", false, "report only the first validation error of a profile")
	flags.Bool("show-secrets", false, "print env values without redaction")
	flags.Bool("no-color", false, "disable colored output")

	bindFlag(system.KeyProjectDir, "project-dir")
	bindFlag(system.KeyFormat, "format")
	bindFlag(system.KeyFailFast, "fail-fast")
	bindFlag(system.KeyShowSecrets, "show-secrets")
	bindFlag(system.KeyNoColor, "no-color")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// initConfig loads configuration from the config file and environment.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".buildprofile")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
