package inputs

import (
	"bytes"
	"context"
	"fmt"

	errorutils "github.com/brave-intl/restpipe/libs/errors"
)

// DecodeValidate - decode and validate for inputs
type DecodeValidate interface {
	Validatable
	Decodable
}

// DecodeAndValidate - perform decode and validate of input in one swipe
func DecodeAndValidate(ctx context.Context, v DecodeValidate, input []byte) error {
	var me = new(errorutils.MultiError)
	if err := v.Decode(ctx, input); err != nil {
		me.Append(fmt.Errorf("failed decoding: %w", err))
	}
	if err := v.Validate(ctx); err != nil {
		me.Append(fmt.Errorf("failed validation: %w", err))
	}
	return me.ErrorOrNil()
}

// DecodeRequest decodes a json body into a new T. An empty or literal null body
// yields no request and no error.
func DecodeRequest[T any](ctx context.Context, body []byte) (*T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	req := new(T)
	var err error
	if d, ok := interface{}(req).(Decodable); ok {
		err = d.Decode(ctx, trimmed)
	} else {
		err = DecodeJSON(ctx, trimmed, req)
	}
	if err != nil {
		return nil, errorutils.New(err, errorutils.ErrBodyDecode.Error(), nil)
	}
	return req, nil
}
