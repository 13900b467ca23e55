package context

import "errors"

// CTXKey - a type for context keys
type CTXKey string

const (
	// EnvironmentCTXKey - the key used for service context
	EnvironmentCTXKey CTXKey = "environment"
	// LogWriterCTXKey - the context key for getting the log writer
	LogWriterCTXKey CTXKey = "log_writer"
	// LogLevelCTXKey - context key for application logging level
	LogLevelCTXKey CTXKey = "log_level"
	// DebugLoggingCTXKey - context key for debug logging
	DebugLoggingCTXKey CTXKey = "debug_logging"

	// VersionCTXKey - context key for version of code
	VersionCTXKey CTXKey = "version"
	// CommitCTXKey - context key for the commit of the code
	CommitCTXKey CTXKey = "commit"
	// BuildTimeCTXKey - context key for the build time of code
	BuildTimeCTXKey CTXKey = "build_time"

	// APIVersionCTXKey - context key for the api version stamped into response envelopes
	APIVersionCTXKey CTXKey = "api_version"
	// CorrelationFromCallerContextCTXKey - context key for seeding correlation ids from the caller context
	CorrelationFromCallerContextCTXKey CTXKey = "correlation_from_caller_context"
	// RequestReceivedCTXKey - context key holding the time a request first entered the server
	RequestReceivedCTXKey CTXKey = "request_received"

	// RequestTimeoutCTXKey - context key for the deadline of a single request
	RequestTimeoutCTXKey CTXKey = "request_timeout"
	// AllowedOriginsCTXKey - context key for the cors allowed origins
	AllowedOriginsCTXKey CTXKey = "allowed_origins"

	// RateLimitPerMinuteCTXKey - rate limit per minute value
	RateLimitPerMinuteCTXKey CTXKey = "rate_limit_per_minute"
	// RateLimiterBurstCTXKey - rate limit burst value
	RateLimiterBurstCTXKey CTXKey = "rate_limit_burst"
)

var (
	// ErrNotInContext - error you get when you ask for something not in the context.
	ErrNotInContext = errors.New("failed to get value from context")
	// ErrValueWrongType - error you get when you ask for something, and it is not the type you expected
	ErrValueWrongType = errors.New("context value of wrong type")
)
