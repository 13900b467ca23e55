package inputs

//go:generate mockgen -source=route.go -destination=mock/mock.go -package=mock_inputs

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi"
)

// RouteValues looks up raw path values by name
type RouteValues interface {
	RouteValue(name string) (string, bool)
}

// RouteValuesFunc adapts a function to RouteValues
type RouteValuesFunc func(name string) (string, bool)

// RouteValue implements RouteValues
func (f RouteValuesFunc) RouteValue(name string) (string, bool) {
	return f(name)
}

// RouteValuesMap is a fixed set of route values
type RouteValuesMap map[string]string

// RouteValue implements RouteValues
func (m RouteValuesMap) RouteValue(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

type chiRouteValues struct {
	params chi.RouteParams
}

// ChiRouteValues returns the path values chi matched for r. Names match exactly
// first, then case insensitively.
func ChiRouteValues(r *http.Request) RouteValues {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return RouteValuesMap{}
	}
	return chiRouteValues{params: rctx.URLParams}
}

func (c chiRouteValues) RouteValue(name string) (string, bool) {
	for i, k := range c.params.Keys {
		if k == name && i < len(c.params.Values) {
			return c.params.Values[i], true
		}
	}
	for i, k := range c.params.Keys {
		if strings.EqualFold(k, name) && i < len(c.params.Values) {
			return c.params.Values[i], true
		}
	}
	return "", false
}
