package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	appctx "github.com/brave-intl/restpipe/libs/context"
	errorutils "github.com/brave-intl/restpipe/libs/errors"
	"github.com/brave-intl/restpipe/libs/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// RootCmd is the base command (what the binary is called)
	RootCmd = &cobra.Command{
		Use:   "restpipe",
		Short: "restpipe serves json apis through the request pipeline",
	}
	ctx = context.Background()
)

// Execute - the main entrypoint for all subcommands in restpipe
func Execute(version, commit, buildTime string) {
	// setup context with logging, but first we need to setup the environment
	var logger *zerolog.Logger
	ctx = context.WithValue(ctx, appctx.EnvironmentCTXKey, viper.GetString("environment"))
	ctx = context.WithValue(ctx, appctx.DebugLoggingCTXKey, viper.GetBool("debug"))
	ctx = context.WithValue(ctx, appctx.LogLevelCTXKey, viper.GetString("log-level"))
	ctx, logger = logging.SetupLogger(ctx)

	ctx = context.WithValue(ctx, appctx.VersionCTXKey, version)
	ctx = context.WithValue(ctx, appctx.CommitCTXKey, commit)
	ctx = context.WithValue(ctx, appctx.BuildTimeCTXKey, buildTime)

	// execute the root cmd
	if err := RootCmd.ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("./restpipe command encountered an error")
		os.Exit(1)
	}
}

func init() {
	// env - defaults to local
	RootCmd.PersistentFlags().String("environment", "local",
		"the default environment")
	Must(viper.BindPFlag("environment", RootCmd.PersistentFlags().Lookup("environment")))
	Must(viper.BindEnv("environment", "ENV"))

	// debug logging - defaults to off
	RootCmd.PersistentFlags().Bool("debug", false, "turn on debug logging")
	Must(viper.BindPFlag("debug", RootCmd.PersistentFlags().Lookup("debug")))
	Must(viper.BindEnv("debug", "DEBUG"))

	// log level - defaults to info
	RootCmd.PersistentFlags().String("log-level", "info", "the minimum level logged")
	Must(viper.BindPFlag("log-level", RootCmd.PersistentFlags().Lookup("log-level")))
	Must(viper.BindEnv("log-level", "LOG_LEVEL"))

	RootCmd.AddCommand(VersionCmd)
}

// VersionCmd is the command to get the code's version information
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "get the version of this binary",
	Run:   versionRun,
}

func versionRun(command *cobra.Command, args []string) {
	version, _ := appctx.GetStringFromContext(command.Context(), appctx.VersionCTXKey)
	commit, _ := appctx.GetStringFromContext(command.Context(), appctx.CommitCTXKey)
	buildTime, _ := appctx.GetStringFromContext(command.Context(), appctx.BuildTimeCTXKey)
	fmt.Fprintf(command.OutOrStdout(), "version: %s\ncommit: %s\nbuild time: %s\n",
		version, commit, buildTime,
	)
}

// Perform performs a run
func Perform(action string, fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		err := fn(cmd, args)
		if err != nil {
			logger, lerr := appctx.GetLogger(cmd.Context())
			if lerr != nil {
				_, logger = logging.SetupLogger(cmd.Context())
			}

			log := logger.Err(err).Str("action", action)
			var bundle *errorutils.ErrorBundle
			if errors.As(err, &bundle) && bundle.Data() != nil {
				log = log.Interface("data", bundle.Data())
			}
			log.Msg("failed")
		}
		<-time.After(10 * time.Millisecond)
		if err != nil {
			os.Exit(1)
		}
	}
}
