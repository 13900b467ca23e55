package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/brave-intl/restpipe/libs/correlation"
	"github.com/brave-intl/restpipe/libs/responses"
	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const (
	// ReasonParseError - the body could not be parsed
	ReasonParseError = "PARSE_ERROR"
	// ReasonValidationError - the request broke its contract
	ReasonValidationError = "VALIDATION_ERROR"
	// ReasonNullRequest - a required request was missing
	ReasonNullRequest = "NULL_REQUEST"
	// BusinessViolationMessage - the detail message of every business rule violation
	BusinessViolationMessage = "BUSINESS_VIOLATION"
)

// FailureKind names each class of failure
type FailureKind string

const (
	// KindValidation - the request was rejected before the handler ran
	KindValidation FailureKind = "validation"
	// KindBusinessRule - the handler refused the request with a stable code
	KindBusinessRule FailureKind = "business_rule"
	// KindUnexpected - anything else
	KindUnexpected FailureKind = "unexpected"
	// KindStatus - a status was already decided, it is wrapped not reclassified
	KindStatus FailureKind = "status"
)

var classifiedFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "classified_failures_total",
		Help: "Number of failed requests by classification.",
	},
	[]string{"kind", "code"},
)

func init() {
	prometheus.MustRegister(classifiedFailures)
}

// Coder is implemented by failures carrying a stable application error code
type Coder interface {
	ErrorCode() string
}

// Failure is the normalized form of anything that stopped a request
type Failure interface {
	error
	Kind() FailureKind
	Status() int
	Envelope() responses.Error
}

// ValidationFailure - the request could not be parsed or broke its contract
type ValidationFailure struct {
	Details []responses.ErrorInfo
}

func (f *ValidationFailure) Error() string {
	if len(f.Details) == 0 {
		return "validation failed"
	}
	return "validation failed: " + f.Details[0].Reason + ": " + f.Details[0].Message
}

// Kind implements Failure
func (f *ValidationFailure) Kind() FailureKind { return KindValidation }

// Status implements Failure
func (f *ValidationFailure) Status() int { return http.StatusBadRequest }

// Envelope implements Failure
func (f *ValidationFailure) Envelope() responses.Error {
	return responses.Error{
		Code:    strconv.Itoa(http.StatusBadRequest),
		Message: StatusName(http.StatusBadRequest),
		Errors:  f.Details,
	}
}

// BusinessRuleViolation - the handler refused the request with a stable code
type BusinessRuleViolation struct {
	Code  string
	Cause error
}

func (f *BusinessRuleViolation) Error() string { return "business rule violated: " + f.Code }

// Unwrap returns the cause
func (f *BusinessRuleViolation) Unwrap() error { return f.Cause }

// Kind implements Failure
func (f *BusinessRuleViolation) Kind() FailureKind { return KindBusinessRule }

// Status implements Failure
func (f *BusinessRuleViolation) Status() int { return http.StatusUnprocessableEntity }

// Envelope implements Failure
func (f *BusinessRuleViolation) Envelope() responses.Error {
	return responses.Error{
		Code:    strconv.Itoa(http.StatusUnprocessableEntity),
		Message: StatusName(http.StatusUnprocessableEntity),
		Errors:  []responses.ErrorInfo{{Message: BusinessViolationMessage, Reason: f.Code}},
	}
}

// UnexpectedFailure - an unclassified failure, never described to the client
type UnexpectedFailure struct {
	Cause error
}

func (f *UnexpectedFailure) Error() string {
	if f.Cause == nil {
		return "unexpected failure"
	}
	return "unexpected failure: " + f.Cause.Error()
}

// Unwrap returns the cause
func (f *UnexpectedFailure) Unwrap() error { return f.Cause }

// Kind implements Failure
func (f *UnexpectedFailure) Kind() FailureKind { return KindUnexpected }

// Status implements Failure
func (f *UnexpectedFailure) Status() int { return http.StatusInternalServerError }

// Envelope implements Failure
func (f *UnexpectedFailure) Envelope() responses.Error {
	return responses.Error{
		Code:    strconv.Itoa(http.StatusInternalServerError),
		Message: StatusName(http.StatusInternalServerError),
	}
}

// StatusFailure - a non-2xx status decided by the handler or framework
type StatusFailure struct {
	Code    int
	Details []responses.ErrorInfo
	Cause   error
}

// NewStatusFailure wraps a bare non-2xx status
func NewStatusFailure(status int) *StatusFailure {
	return &StatusFailure{Code: status}
}

func (f *StatusFailure) Error() string {
	if f.Cause != nil {
		return StatusName(f.Code) + ": " + f.Cause.Error()
	}
	return StatusName(f.Code)
}

// Unwrap returns the cause
func (f *StatusFailure) Unwrap() error { return f.Cause }

// Kind implements Failure
func (f *StatusFailure) Kind() FailureKind { return KindStatus }

// Status implements Failure
func (f *StatusFailure) Status() int { return f.Code }

// Envelope implements Failure
func (f *StatusFailure) Envelope() responses.Error {
	return responses.Error{
		Code:    strconv.Itoa(f.Code),
		Message: StatusName(f.Code),
		Errors:  f.Details,
	}
}

// Classifier maps raised errors onto failures and reports them
type Classifier struct {
	logger *zerolog.Logger
	codeOf func(error) string
}

// ClassifierOption configures a Classifier
type ClassifierOption func(*Classifier)

// WithErrorCodes overrides how business codes are read from errors. An empty
// code means the error is not a business rule violation.
func WithErrorCodes(codeOf func(error) string) ClassifierOption {
	return func(c *Classifier) {
		c.codeOf = codeOf
	}
}

// NewClassifier creates a classifier, logger is used when the request context
// carries none
func NewClassifier(logger *zerolog.Logger, opts ...ClassifierOption) *Classifier {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	c := &Classifier{logger: logger, codeOf: ErrorCodeOf}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ErrorCodeOf returns the code of the first Coder in err's chain
func ErrorCodeOf(err error) string {
	var coder Coder
	if errors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// Classify maps err onto exactly one failure, nil stays nil
func (c *Classifier) Classify(err error) Failure {
	if err == nil {
		return nil
	}

	var validation *ValidationFailure
	if errors.As(err, &validation) {
		return validation
	}
	var status *StatusFailure
	if errors.As(err, &status) {
		return status
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErrorFailure(appErr)
	}
	var violation *BusinessRuleViolation
	if errors.As(err, &violation) && violation.Code != "" {
		return violation
	}
	if code := c.codeOf(err); code != "" {
		return &BusinessRuleViolation{Code: code, Cause: err}
	}
	var unexpected *UnexpectedFailure
	if errors.As(err, &unexpected) {
		return unexpected
	}
	return &UnexpectedFailure{Cause: err}
}

func appErrorFailure(e *AppError) Failure {
	code := e.Code
	if code == 0 {
		code = http.StatusInternalServerError
	}
	if code == http.StatusInternalServerError && e.ErrorCode == "" {
		return &UnexpectedFailure{Cause: e}
	}
	f := &StatusFailure{Code: code, Cause: e}
	if e.ErrorCode != "" {
		f.Details = []responses.ErrorInfo{{Message: e.Message, Reason: e.ErrorCode}}
	}
	return f
}

// Report records a classified failure. Unexpected failures, and failures with
// a server error status, are logged at error level and sent to sentry.
func (c *Classifier) Report(ctx context.Context, f Failure, controller string) {
	if f == nil {
		return
	}
	classifiedFailures.WithLabelValues(string(f.Kind()), strconv.Itoa(f.Status())).Inc()

	if f.Kind() != KindUnexpected && f.Status() < http.StatusInternalServerError {
		return
	}

	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = c.logger
	}
	e := logger.Error().Err(f).Str("Controller", controller)
	var traced interface{ StackTrace() string }
	if errors.As(f, &traced) {
		e = e.Str("stacktrace", traced.StackTrace())
	}
	e.Msgf("Critical exception occured while processing request in controller %s", controller)

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(map[string]string{
			"correlationId": correlation.ID(ctx),
			"controller":    controller,
		})
		sentry.CaptureException(f)
	})
}

// Envelope renders a failure as status and response envelope
func Envelope(f Failure) (int, responses.Response) {
	e := f.Envelope()
	return f.Status(), responses.Response{Error: &e}
}
