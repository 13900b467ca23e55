package requestutils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/brave-intl/restpipe/libs/closers"
	errorutils "github.com/brave-intl/restpipe/libs/errors"
)

type requestID string

var (
	payloadLimit10MB = int64(1024 * 1024 * 10)
	// RequestIDHeaderKey is the request header key
	RequestIDHeaderKey = "x-request-id"
	// RequestID holds the type for request ids
	RequestID = requestID(RequestIDHeaderKey)
)

// ReadWithLimit reads an io reader with a limit and closes it. A body longer
// than limit fails with ErrBodyTooLarge.
func ReadWithLimit(ctx context.Context, body io.Reader, limit int64) ([]byte, error) {
	if c, ok := body.(io.Closer); ok {
		defer closers.Log(ctx, c)
	}
	b, err := ioutil.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", errorutils.ErrBodyTooLarge, limit)
	}
	return b, nil
}

// Read an io reader
func Read(ctx context.Context, body io.Reader) ([]byte, error) {
	b, err := ReadWithLimit(ctx, body, payloadLimit10MB)
	if errors.Is(err, errorutils.ErrBodyTooLarge) {
		return nil, err
	}
	if err != nil {
		return nil, errorutils.Wrap(err, errorutils.ErrBodyRead.Error())
	}
	return b, nil
}

// CarriesBody is true for the methods whose body is read before dispatch
func CarriesBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// ReadBody reads the body of POST, PUT and PATCH requests and puts an identical
// reader back on the request so later stages can read it again. Other methods
// yield no body.
func ReadBody(ctx context.Context, r *http.Request) ([]byte, error) {
	if !CarriesBody(r.Method) || r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	b, err := Read(ctx, r.Body)
	r.Body = ioutil.NopCloser(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetRequestID gets the request id
func GetRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(RequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID stores the request id in ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestID, id)
}
