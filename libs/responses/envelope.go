package responses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// MediaTypeJSON is the media type of every envelope
const MediaTypeJSON = "application/json; charset=utf-8"

// ErrEncoding is returned by Render when nothing was written because the
// envelope could not be serialized
var ErrEncoding = errors.New("error encoding json response")

// ErrorInfo is a single detail of a failed request
type ErrorInfo struct {
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

// Error is the error half of the envelope
type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Errors  []ErrorInfo `json:"errors,omitempty"`
}

// Response is the envelope every json response is written in, carrying either
// data or an error
// { "data": {...}, "apiVersion": "v1" }
// { "error": { "code": "400", "message": "BadRequest", "errors": [...] } }
type Response struct {
	Data       interface{} `json:"data,omitempty"`
	APIVersion string      `json:"apiVersion,omitempty"`
	Error      *Error      `json:"error,omitempty"`
}

// Build wraps data in a success envelope
func Build(data interface{}, apiVersion string) Response {
	return Response{Data: data, APIVersion: apiVersion}
}

// BuildError wraps an error in an envelope
func BuildError(code, message string, details ...ErrorInfo) Response {
	return Response{Error: &Error{Code: code, Message: message, Errors: details}}
}

// WrappedPayload exposes the application payload to log redaction
func (r Response) WrappedPayload() (string, interface{}) {
	return "data", r.Data
}

// Render - marshal and write the envelope with the given status. Statuses that
// forbid a body only get the header.
func (r Response) Render(ctx context.Context, w http.ResponseWriter, status int) error {
	if status == http.StatusNoContent || status == http.StatusNotModified {
		w.WriteHeader(status)
		return nil
	}

	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrEncoding, err.Error())
	}

	w.Header().Set("content-type", MediaTypeJSON)
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("error writing response: %w", err)
	}
	return nil
}
