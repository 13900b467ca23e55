// Package pipeline runs every request of an endpoint through the same stages:
// correlation, materialization, inbound logging, validation, dispatch, failure
// classification and outbound logging.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"runtime/debug"
	"time"

	"github.com/brave-intl/restpipe/libs/closers"
	appctx "github.com/brave-intl/restpipe/libs/context"
	"github.com/brave-intl/restpipe/libs/correlation"
	"github.com/brave-intl/restpipe/libs/handlers"
	"github.com/brave-intl/restpipe/libs/inputs"
	"github.com/brave-intl/restpipe/libs/logging"
	"github.com/brave-intl/restpipe/libs/requestutils"
	"github.com/brave-intl/restpipe/libs/responses"
	"github.com/brave-intl/restpipe/libs/sensitive"
	"github.com/brave-intl/restpipe/libs/useragent"
	"github.com/rs/zerolog"
)

// Annotations recorded on every correlation besides the caller context
const (
	RequestIDAnnotation = "RequestID"
	PlatformAnnotation  = "Platform"
	ClientAnnotation    = "Client"
)

// Endpoint handles a materialized and validated request
type Endpoint[T any] func(ctx context.Context, req *T) (Reply, error)

// Pipeline holds what is shared by every endpoint it wraps
type Pipeline struct {
	logger                *zerolog.Logger
	index                 *sensitive.Index
	classifier            *handlers.Classifier
	traffic               *logging.TrafficLogger
	apiVersion            string
	seedFromCallerContext bool
	now                   func() time.Time
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithAPIVersion stamps version into success envelopes whose reply sets none
func WithAPIVersion(version string) Option {
	return func(p *Pipeline) {
		p.apiVersion = version
	}
}

// WithCallerContextSeed uses a request's caller context as its correlation id
// when it parses as one and no id came in the header
func WithCallerContextSeed(enabled bool) Option {
	return func(p *Pipeline) {
		p.seedFromCallerContext = enabled
	}
}

// WithSensitiveIndex replaces the process wide sensitive field index
func WithSensitiveIndex(index *sensitive.Index) Option {
	return func(p *Pipeline) {
		p.index = index
	}
}

// WithClassifier replaces the default failure classifier
func WithClassifier(c *handlers.Classifier) Option {
	return func(p *Pipeline) {
		p.classifier = c
	}
}

// OptionsFromContext reads the pipeline settings stored in ctx
func OptionsFromContext(ctx context.Context) []Option {
	var opts []Option
	if v, err := appctx.GetStringFromContext(ctx, appctx.APIVersionCTXKey); err == nil {
		opts = append(opts, WithAPIVersion(v))
	}
	if v, err := appctx.GetBoolFromContext(ctx, appctx.CorrelationFromCallerContextCTXKey); err == nil {
		opts = append(opts, WithCallerContextSeed(v))
	}
	return opts
}

// New creates a pipeline. logger is used for requests whose context carries none.
func New(logger *zerolog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	p := &Pipeline{
		logger: logger,
		index:  sensitive.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.classifier == nil {
		p.classifier = handlers.NewClassifier(logger)
	}
	p.traffic = logging.NewTrafficLogger(logger, p.index)
	return p
}

type endpointConfig struct {
	requireBody bool
}

// EndpointOption configures a single endpoint
type EndpointOption func(*endpointConfig)

// RequireBody rejects requests without a body with NULL_REQUEST
func RequireBody() EndpointOption {
	return func(c *endpointConfig) {
		c.requireBody = true
	}
}

// exchange is the state of one request as it moves through the stages
type exchange struct {
	controller  string
	receivedAt  time.Time
	handle      *correlation.Handle
	correlation *correlation.Correlation
	formatter   logging.ResponseLogFormatter
}

func (x *exchange) correlationID() string {
	return x.correlation.ID().String()
}

// Handle adapts an endpoint to http. controller names the endpoint in logs.
func Handle[T any](p *Pipeline, controller string, ep Endpoint[T], opts ...EndpointOption) http.Handler {
	var cfg endpointConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		x := &exchange{controller: controller, receivedAt: p.receivedAt(ctx)}

		var parseErrs []error
		raw, err := requestutils.ReadBody(ctx, r)
		if err != nil {
			parseErrs = append(parseErrs, err)
		}
		decoded, err := inputs.DecodeRequest[T](ctx, raw)
		if err != nil {
			parseErrs = append(parseErrs, err)
		}

		var callerContext string
		if decoded != nil {
			if cc, ok := interface{}(decoded).(correlation.CallerContexter); ok {
				callerContext = cc.CallerContext()
			}
		}
		ctx = p.begin(ctx, r, x, callerContext)
		defer x.handle.End()

		req := inputs.Materialize(ctx, decoded, inputs.ChiRouteValues(r))
		if carrier, ok := interface{}(req).(correlation.Carrier); ok {
			carrier.SetCorrelationID(x.correlationID())
		}
		if f, ok := interface{}(req).(logging.ResponseLogFormatter); ok {
			x.formatter = f
		}

		p.traffic.LogInbound(ctx, raw, req, controller)

		var candidate interface{} = req
		if decoded == nil && cfg.requireBody {
			candidate = nil
		}
		if failure := handlers.ValidateRequest(ctx, parseErrs, candidate); failure != nil {
			p.fail(ctx, w, x, failure)
			return
		}

		reply, err := invoke(ctx, ep, req)
		if err != nil {
			p.fail(ctx, w, x, p.classifier.Classify(err))
			return
		}
		p.reply(ctx, w, x, reply)
	})
}

func (p *Pipeline) receivedAt(ctx context.Context) time.Time {
	if t, err := appctx.GetRequestReceived(ctx); err == nil {
		return t
	}
	return p.now().UTC()
}

func (p *Pipeline) begin(ctx context.Context, r *http.Request, x *exchange, callerContext string) context.Context {
	seed := correlation.ParseID(r.Header.Get(correlation.HeaderKey))
	if seed == nil && p.seedFromCallerContext {
		seed = correlation.ParseID(callerContext)
	}

	ctx, x.handle = correlation.Begin(ctx, seed)
	x.correlation = x.handle.Correlation()

	if callerContext != "" {
		x.correlation.Annotate(correlation.CallerContextAnnotation, callerContext)
	}
	if id := requestutils.GetRequestID(ctx); id != "" {
		x.correlation.Annotate(RequestIDAnnotation, id)
	}
	if platform := useragent.ParsePlatform(r.UserAgent()); platform != "" {
		x.correlation.Annotate(PlatformAnnotation, platform)
	}
	if client := useragent.ParseClient(r.UserAgent()); client != "" {
		x.correlation.Annotate(ClientAnnotation, client)
	}

	logger := p.loggerFor(ctx).With().Str("correlationId", x.correlationID()).Logger()
	return logger.WithContext(ctx)
}

func (p *Pipeline) loggerFor(ctx context.Context) *zerolog.Logger {
	if l, err := appctx.GetLogger(ctx); err == nil {
		return l
	}
	return p.logger
}

func (p *Pipeline) reply(ctx context.Context, w http.ResponseWriter, x *exchange, reply Reply) {
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	if status < 200 || status > 299 {
		p.fail(ctx, w, x, handlers.NewStatusFailure(status))
		return
	}
	if reply.Stream != nil {
		p.stream(ctx, w, x, status, reply)
		return
	}

	if carrier, ok := carrierOf(reply.Data); ok && carrier.CorrelationID() == "" {
		carrier.SetCorrelationID(x.correlationID())
	}
	apiVersion := reply.APIVersion
	if apiVersion == "" {
		apiVersion = p.apiVersion
	}
	p.write(ctx, w, x, status, responses.Build(reply.Data, apiVersion))
}

func (p *Pipeline) fail(ctx context.Context, w http.ResponseWriter, x *exchange, f handlers.Failure) {
	p.classifier.Report(ctx, f, x.controller)
	status, body := handlers.Envelope(f)
	p.write(ctx, w, x, status, body)
}

func (p *Pipeline) write(ctx context.Context, w http.ResponseWriter, x *exchange, status int, body responses.Response) {
	w.Header().Set(correlation.HeaderKey, x.correlationID())

	if err := body.Render(ctx, w, status); err != nil {
		if !errors.Is(err, responses.ErrEncoding) {
			p.loggerFor(ctx).Warn().Err(err).Str(logging.ControllerField, x.controller).Msg("failed to write response")
		} else {
			f := &handlers.UnexpectedFailure{Cause: err}
			p.classifier.Report(ctx, f, x.controller)
			status, body = handlers.Envelope(f)
			if err := body.Render(ctx, w, status); err != nil {
				p.loggerFor(ctx).Warn().Err(err).Str(logging.ControllerField, x.controller).Msg("failed to write response")
			}
		}
	}

	out := logging.Outbound{
		StatusCode: status,
		Controller: x.controller,
		ReceivedAt: x.receivedAt,
		Formatter:  x.formatter,
	}
	if status != http.StatusNoContent && status != http.StatusNotModified {
		out.MediaType = responses.MediaTypeJSON
		out.Body = body
	}
	p.traffic.LogOutbound(ctx, out)
}

func (p *Pipeline) stream(ctx context.Context, w http.ResponseWriter, x *exchange, status int, reply Reply) {
	mediaType := reply.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	w.Header().Set(correlation.HeaderKey, x.correlationID())
	w.Header().Set("content-type", mediaType)
	w.WriteHeader(status)

	if _, err := io.Copy(w, reply.Stream); err != nil {
		p.loggerFor(ctx).Warn().Err(err).Str(logging.ControllerField, x.controller).Msg("failed to stream response")
	}
	if c, ok := reply.Stream.(io.Closer); ok {
		closers.Log(ctx, c)
	}

	p.traffic.LogOutbound(ctx, logging.Outbound{
		StatusCode: status,
		MediaType:  mediaType,
		Controller: x.controller,
		ReceivedAt: x.receivedAt,
	})
}

// panicError is a recovered endpoint panic
type panicError struct {
	value interface{}
	stack string
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// StackTrace of the panicking goroutine
func (e *panicError) StackTrace() string {
	return e.stack
}

func invoke[T any](ctx context.Context, ep Endpoint[T], req *T) (reply Reply, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err = &panicError{value: rec, stack: string(debug.Stack())}
		}
	}()
	return ep(ctx, req)
}

func carrierOf(v interface{}) (correlation.Carrier, bool) {
	if v == nil {
		return nil, false
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil, false
	}
	c, ok := v.(correlation.Carrier)
	return c, ok
}
