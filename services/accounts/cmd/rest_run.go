package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	appctx "github.com/brave-intl/restpipe/libs/context"
	"github.com/brave-intl/restpipe/libs/middleware"
	"github.com/brave-intl/restpipe/libs/pipeline"
	"github.com/brave-intl/restpipe/services/accounts"
	"github.com/brave-intl/restpipe/services/cmd"
	sentry "github.com/getsentry/sentry-go"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RestRun - Main entrypoint of the REST subcommand
// This function takes a cobra command and starts up the
// accounts rest microservice.
func RestRun(command *cobra.Command, args []string) error {
	ctx := cmd.WithServeSettings(command.Context())
	ctx = context.WithValue(ctx, appctx.APIVersionCTXKey, viper.GetString("api-version"))
	ctx = context.WithValue(ctx, appctx.CorrelationFromCallerContextCTXKey, viper.GetBool("correlation-from-caller-context"))

	logger, err := appctx.GetLogger(ctx)
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	if dsn := viper.GetString("sentry-dsn"); dsn != "" {
		env, _ := appctx.GetStringFromContext(ctx, appctx.EnvironmentCTXKey)
		version, _ := appctx.GetStringFromContext(ctx, appctx.VersionCTXKey)
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         dsn,
			Environment: env,
			Release:     version,
		}); err != nil {
			return fmt.Errorf("failed to initialize sentry: %w", err)
		}
		// make sure exceptions go to sentry
		defer sentry.Flush(2 * time.Second)
	}

	service, err := accounts.InitService(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize accounts service: %w", err)
	}
	p := pipeline.New(logger, pipeline.OptionsFromContext(ctx)...)

	// setup generic middlewares and routes for health-check
	r := cmd.SetupRouter(ctx)
	r.Mount("/v1/accounts", accounts.Router(service, p, middleware.InstrumentHandler))

	go func() {
		metrics := chi.NewRouter()
		metrics.Get("/metrics", middleware.Metrics().ServeHTTP)
		logger.Info().Str("address", viper.GetString("metrics-address")).Msg("metrics server starting")
		if err := http.ListenAndServe(viper.GetString("metrics-address"), metrics); err != nil {
			logger.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	// setup server, and run
	srv := http.Server{
		Addr:         viper.GetString("address"),
		Handler:      chi.ServerBaseContext(ctx, r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		sentry.CaptureException(err)
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}
