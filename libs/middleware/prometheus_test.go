package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstrumentHandler(t *testing.T) {
	noop := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	first := InstrumentHandler("AccountsController.Create", noop)
	// registering the same handler name again reuses the collectors
	second := InstrumentHandler("AccountsController.Create", noop)

	for _, h := range []http.Handler{first, second} {
		rw := httptest.NewRecorder()
		h.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/v1/accounts", nil))
		assert.Equal(t, http.StatusCreated, rw.Code)
	}

	rw := httptest.NewRecorder()
	Metrics().ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rw.Body.String(), `api_requests_total{code="201",handler="AccountsController.Create",method="post"} 2`)
}
