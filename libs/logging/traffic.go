package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/brave-intl/restpipe/libs/correlation"
	"github.com/brave-intl/restpipe/libs/sensitive"
	"github.com/rs/zerolog"
)

// Traffic log field names
const (
	RawRequestBodyField           = "RawRequestBody"
	RequestBodyField              = "RequestBody"
	ControllerField               = "Controller"
	StatusCodeField               = "StatusCode"
	MediaTypeField                = "MediaType"
	ResponseBodyField             = "ResponseBody"
	ResponseTimeMillisecondsField = "ResponseTimeMilliseconds"
	AnnotationsField              = "Annotations"
)

const (
	// SensitiveRawBodyPlaceholder stands in for the raw body of requests with sensitive fields
	SensitiveRawBodyPlaceholder = "Request contains sensitive information"
	// UnformattableBodyPlaceholder stands in for a body that could not be redacted
	UnformattableBodyPlaceholder = "Could not format the raw request body"

	jsonMediaType = "application/json"
)

// Wrapper is implemented by response envelopes nesting the application
// payload under a single key
type Wrapper interface {
	WrappedPayload() (key string, payload interface{})
}

// ResponseLogFormatter is implemented by requests that rewrite the serialized
// response body before it is logged
type ResponseLogFormatter interface {
	FormatResponseForLogging(body string, mediaType string) string
}

// Outbound describes a response about to be logged
type Outbound struct {
	StatusCode int
	MediaType  string
	// Body is the value serialized to the client, nil for streamed content
	Body       interface{}
	Controller string
	// ReceivedAt is when the request entered the server, zero when unknown
	ReceivedAt time.Time
	Formatter  ResponseLogFormatter
}

// TrafficLogger writes one structured event per inbound request and outbound
// response with sensitive values masked
type TrafficLogger struct {
	logger *zerolog.Logger
	index  *sensitive.Index
	now    func() time.Time
}

// NewTrafficLogger creates a traffic logger. The request scoped logger in ctx is
// preferred, logger is used when ctx carries none.
func NewTrafficLogger(logger *zerolog.Logger, index *sensitive.Index) *TrafficLogger {
	if index == nil {
		index = sensitive.Default()
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &TrafficLogger{
		logger: logger,
		index:  index,
		now:    time.Now,
	}
}

func (tl *TrafficLogger) loggerFor(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return tl.logger
}

// LogInbound logs a received request. rawBody is what the client sent and
// payload the decoded request, used only to find its sensitive fields.
func (tl *TrafficLogger) LogInbound(ctx context.Context, rawBody []byte, payload interface{}, controller string) {
	logger := tl.loggerFor(ctx)
	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn().Str("panic", fmt.Sprint(rec)).Str(ControllerField, controller).
				Msg("Could not log that a rest request was received")
		}
	}()

	e := logger.Info()
	if !e.Enabled() {
		return
	}
	if body := bytes.TrimSpace(rawBody); len(body) > 0 {
		fields := tl.index.FieldsFor(payload)
		if fields.IsEmpty() {
			e = e.Str(RawRequestBodyField, string(rawBody)).Str(RequestBodyField, string(rawBody))
		} else {
			e = e.Str(RawRequestBodyField, SensitiveRawBodyPlaceholder)
			if masked, err := Mask(body, fields); err != nil {
				e = e.Str(RequestBodyField, UnformattableBodyPlaceholder)
			} else {
				e = e.Str(RequestBodyField, string(masked))
			}
		}
	}
	if controller != "" {
		e = e.Str(ControllerField, controller)
	}
	withAnnotations(ctx, e).Msg("Rest request received")
}

// LogOutbound logs a response. Bodies are logged only for json media types,
// with the sensitive fields of the wrapped payload masked.
func (tl *TrafficLogger) LogOutbound(ctx context.Context, out Outbound) {
	logger := tl.loggerFor(ctx)
	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn().Str("panic", fmt.Sprint(rec)).Int(StatusCodeField, out.StatusCode).
				Msg("Could not log that a rest response was sent")
		}
	}()

	e := logger.Info()
	if !e.Enabled() {
		return
	}
	e = e.Int(StatusCodeField, out.StatusCode)
	if out.MediaType != "" {
		e = e.Str(MediaTypeField, out.MediaType)
	}
	if out.Controller != "" {
		e = e.Str(ControllerField, out.Controller)
	}
	if out.Body != nil && strings.Contains(strings.ToLower(out.MediaType), jsonMediaType) {
		body, err := tl.responseBody(out)
		if err != nil {
			logger.Warn().Err(err).Int(StatusCodeField, out.StatusCode).Msg("Could not format the response body")
		} else {
			e = e.Str(ResponseBodyField, body)
		}
	}
	if !out.ReceivedAt.IsZero() {
		e = e.Int64(ResponseTimeMillisecondsField, tl.now().Sub(out.ReceivedAt).Milliseconds())
	}
	withAnnotations(ctx, e).Msg("Rest response sent")
}

func (tl *TrafficLogger) responseBody(out Outbound) (string, error) {
	raw, err := json.Marshal(out.Body)
	if err != nil {
		return "", fmt.Errorf("failed to serialize response body: %w", err)
	}

	fields, path := tl.index.FieldsFor(out.Body), []string(nil)
	if w, ok := out.Body.(Wrapper); ok {
		key, payload := w.WrappedPayload()
		fields, path = tl.index.FieldsFor(payload), []string{key}
	}
	if !fields.IsEmpty() {
		if raw, err = Mask(raw, fields, path...); err != nil {
			return "", fmt.Errorf("failed to mask response body: %w", err)
		}
	}

	body := string(raw)
	if out.Formatter != nil {
		body = out.Formatter.FormatResponseForLogging(body, out.MediaType)
	}
	return body, nil
}

func withAnnotations(ctx context.Context, e *zerolog.Event) *zerolog.Event {
	c, ok := correlation.Current(ctx)
	if !ok {
		return e
	}
	annotations := c.Annotations()
	if len(annotations) == 0 {
		return e
	}
	d := zerolog.Dict()
	for k, v := range annotations {
		d = d.Str(k, v)
	}
	return e.Dict(AnnotationsField, d)
}
