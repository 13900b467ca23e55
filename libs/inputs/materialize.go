package inputs

import (
	"context"

	"github.com/brave-intl/restpipe/libs/logging"
)

// Materialize completes a request from its decoded body and the route values.
// A nil request is replaced by a zero T. When the request carries an identifier
// slot it is always attached, and every declared field with a matching route
// value is coerced onto it.
// Fields that fail to coerce keep their zero value and are reported at debug
// level only, rejecting incomplete identifiers is left to validation.
func Materialize[T any](ctx context.Context, req *T, values RouteValues) *T {
	if req == nil {
		req = new(T)
	}
	identified, ok := interface{}(req).(Identified)
	if !ok {
		return req
	}
	identifier := identified.ResourceIdentifier()
	if values == nil {
		return req
	}

	for _, field := range identifier.IdentifierFields() {
		raw, ok := values.RouteValue(field.Name)
		if !ok {
			continue
		}
		if err := field.Bind(raw); err != nil {
			logging.Logger(ctx, "inputs.Materialize").Debug().Err(err).Str("field", field.Name).Msg("skipped route value")
		}
	}
	return req
}
