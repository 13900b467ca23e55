package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appctx "github.com/brave-intl/restpipe/libs/context"
	"github.com/brave-intl/restpipe/libs/requestutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDTransfer(t *testing.T) {
	var seen string
	handler := RequestIDTransfer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestutils.GetRequestID(r.Context())
	}))

	rw := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(requestutils.RequestIDHeaderKey, "from-upstream")
	handler.ServeHTTP(rw, r)

	assert.Equal(t, "from-upstream", seen)
	assert.Equal(t, "from-upstream", rw.Header().Get(requestutils.RequestIDHeaderKey))

	rw = httptest.NewRecorder()
	handler.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, seen, 16)
	assert.Equal(t, seen, rw.Header().Get(requestutils.RequestIDHeaderKey))
}

func TestRequestReceived(t *testing.T) {
	var seen time.Time
	handler := RequestReceived(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		seen, err = appctx.GetRequestReceived(r.Context())
		require.NoError(t, err)
	}))

	before := time.Now().UTC()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, seen.Before(before))

	earlier := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(context.WithValue(r.Context(), appctx.RequestReceivedCTXKey, earlier))
	handler.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, earlier, seen)
}
