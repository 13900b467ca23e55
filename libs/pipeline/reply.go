package pipeline

import (
	"io"
	"net/http"
)

// Reply is what an endpoint answers with. A zero Status means 200.
type Reply struct {
	Status     int
	Data       interface{}
	APIVersion string
	// MediaType and Stream describe content written verbatim instead of the
	// json envelope. Streamed content is never logged.
	MediaType string
	Stream    io.Reader
}

// OK - 200 with data
func OK(data interface{}) Reply {
	return Reply{Status: http.StatusOK, Data: data}
}

// Created - 201 with data
func Created(data interface{}) Reply {
	return Reply{Status: http.StatusCreated, Data: data}
}

// NoContent - 204 without a body
func NoContent() Reply {
	return Reply{Status: http.StatusNoContent}
}

// Status answers with a bare status. Non-2xx statuses are written as the
// standard error envelope.
func Status(code int) Reply {
	return Reply{Status: code}
}

// Stream - 200 with content copied from r, closed afterwards when it is an io.Closer
func Stream(mediaType string, r io.Reader) Reply {
	return Reply{Status: http.StatusOK, MediaType: mediaType, Stream: r}
}
