package cmd

import (
	"context"
	"net/http"
	"time"

	rootcmd "github.com/brave-intl/restpipe/cmd"
	appctx "github.com/brave-intl/restpipe/libs/context"
	"github.com/brave-intl/restpipe/libs/correlation"
	"github.com/brave-intl/restpipe/libs/handlers"
	"github.com/brave-intl/restpipe/libs/logging"
	"github.com/brave-intl/restpipe/libs/middleware"
	"github.com/brave-intl/restpipe/libs/requestutils"
	"github.com/go-chi/chi"
	chiware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultRateLimit = 180
)

func init() {
	rootcmd.RootCmd.AddCommand(ServeCmd)

	// address - sets the address of the server to be started
	ServeCmd.PersistentFlags().String("address", ":8080",
		"the default address to bind to")
	rootcmd.Must(viper.BindPFlag("address", ServeCmd.PersistentFlags().Lookup("address")))
	rootcmd.Must(viper.BindEnv("address", "ADDR"))

	// metrics-address - prometheus scrapes are served apart from the api
	ServeCmd.PersistentFlags().String("metrics-address", ":9090",
		"the address the metrics server binds to")
	rootcmd.Must(viper.BindPFlag("metrics-address", ServeCmd.PersistentFlags().Lookup("metrics-address")))
	rootcmd.Must(viper.BindEnv("metrics-address", "METRICS_ADDR"))

	ServeCmd.PersistentFlags().Duration("request-timeout", defaultTimeout,
		"the deadline of a single request")
	rootcmd.Must(viper.BindPFlag("request-timeout", ServeCmd.PersistentFlags().Lookup("request-timeout")))
	rootcmd.Must(viper.BindEnv("request-timeout", "REQUEST_TIMEOUT"))

	ServeCmd.PersistentFlags().Int("rate-limit-per-min", defaultRateLimit,
		"requests allowed per minute and client ip in production")
	rootcmd.Must(viper.BindPFlag("rate-limit-per-min", ServeCmd.PersistentFlags().Lookup("rate-limit-per-min")))
	rootcmd.Must(viper.BindEnv("rate-limit-per-min", "RATE_LIMIT_PER_MIN"))

	ServeCmd.PersistentFlags().Int("rate-limit-burst", 0,
		"requests allowed above the rate limit in a burst")
	rootcmd.Must(viper.BindPFlag("rate-limit-burst", ServeCmd.PersistentFlags().Lookup("rate-limit-burst")))
	rootcmd.Must(viper.BindEnv("rate-limit-burst", "RATE_LIMIT_BURST"))

	ServeCmd.PersistentFlags().StringSlice("allowed-origins", nil,
		"the origins browsers may call the api from, space separated in the environment")
	rootcmd.Must(viper.BindPFlag("allowed-origins", ServeCmd.PersistentFlags().Lookup("allowed-origins")))
	rootcmd.Must(viper.BindEnv("allowed-origins", "ALLOWED_ORIGINS"))
}

// ServeCmd the serve command
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "entrypoint to serve a micro-service",
}

// WithServeSettings adds the serve flags to ctx
func WithServeSettings(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, appctx.RequestTimeoutCTXKey, viper.GetDuration("request-timeout"))
	ctx = context.WithValue(ctx, appctx.RateLimitPerMinuteCTXKey, viper.GetInt("rate-limit-per-min"))
	ctx = context.WithValue(ctx, appctx.RateLimiterBurstCTXKey, viper.GetInt("rate-limit-burst"))
	ctx = context.WithValue(ctx, appctx.AllowedOriginsCTXKey, viper.GetStringSlice("allowed-origins"))
	return ctx
}

// SetupRouter sets up a router
func SetupRouter(ctx context.Context) *chi.Mux {
	logger, err := appctx.GetLogger(ctx)
	if err != nil {
		// no logger on context, make a new one
		ctx, logger = logging.SetupLogger(ctx)
	}

	timeout, ok := ctx.Value(appctx.RequestTimeoutCTXKey).(time.Duration)
	if !ok || timeout <= 0 {
		timeout = defaultTimeout
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestReceived,
		chiware.RealIP,
		chiware.Heartbeat("/"),
		chiware.Timeout(timeout),
		middleware.RequestIDTransfer)

	if origins, ok := ctx.Value(appctx.AllowedOriginsCTXKey).([]string); ok && len(origins) > 0 {
		debug, _ := appctx.GetBoolFromContext(ctx, appctx.DebugLoggingCTXKey)
		r.Use(cors.Handler(cors.Options{
			Debug:            debug,
			AllowedOrigins:   origins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch},
			AllowedHeaders:   []string{"Accept", "Content-Type", correlation.HeaderKey, requestutils.RequestIDHeaderKey},
			ExposedHeaders:   []string{correlation.HeaderKey},
			AllowCredentials: false,
			MaxAge:           300, // Maximum value not ignored by any of major browsers
		}))
	}

	if env, _ := appctx.GetStringFromContext(ctx, appctx.EnvironmentCTXKey); env == "production" {
		rl, ok := ctx.Value(appctx.RateLimitPerMinuteCTXKey).(int)
		if !ok || rl <= 0 {
			rl = defaultRateLimit
		}
		r.Use(middleware.RateLimiter(ctx, rl))
	}

	version, _ := appctx.GetStringFromContext(ctx, appctx.VersionCTXKey)
	commit, _ := appctx.GetStringFromContext(ctx, appctx.CommitCTXKey)
	buildTime, _ := appctx.GetStringFromContext(ctx, appctx.BuildTimeCTXKey)

	// Also handles panic recovery
	r.Use(
		hlog.NewHandler(*logger),
		hlog.UserAgentHandler("user_agent"),
		hlog.RequestIDHandler("req_id", "Request-Id"),
		middleware.RequestLogger(logger))

	logger.Info().
		Str("version", version).
		Str("commit", commit).
		Str("build_time", buildTime).
		Str("address", viper.GetString("address")).
		Str("environment", viper.GetString("environment")).
		Msg("server starting")

	r.Get("/health-check", handlers.HealthCheckHandler(version, buildTime, commit, nil))
	return r
}
