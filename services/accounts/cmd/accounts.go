package cmd

import (
	rootcmd "github.com/brave-intl/restpipe/cmd"
	"github.com/brave-intl/restpipe/services/cmd"
	"github.com/spf13/cobra"
)

var (
	// AccountsCmd root accounts command
	AccountsCmd = &cobra.Command{
		Use:   "accounts",
		Short: "provides accounts micro-service entrypoint",
	}

	accountsRestCmd = &cobra.Command{
		Use:   "rest",
		Short: "provides REST api services",
		Run:   rootcmd.Perform("accounts rest", RestRun),
	}
)

func init() {
	AccountsCmd.AddCommand(accountsRestCmd)

	// add this command as a serve subcommand
	cmd.ServeCmd.AddCommand(AccountsCmd)

	builder := rootcmd.NewFlagBuilder(accountsRestCmd)

	builder.Flag().String("api-version", "",
		"the api version stamped into every response envelope").
		Env("API_VERSION").
		Bind("api-version")

	builder.Flag().Bool("correlation-from-caller-context", false,
		"seed correlation ids from the callerContext of requests").
		Env("CORRELATION_FROM_CALLER_CONTEXT").
		Bind("correlation-from-caller-context")

	builder.Flag().String("sentry-dsn", "",
		"where unexpected failures are reported, empty disables reporting").
		Env("SENTRY_DSN").
		Bind("sentry-dsn")
}
