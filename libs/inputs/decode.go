package inputs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
)

// Decodable - an interface for types that decode themselves
type Decodable interface {
	Decode(context.Context, []byte) error
}

// Decode - decode a decodable thing
func Decode(ctx context.Context, d Decodable, input []byte) error {
	return d.Decode(ctx, input)
}

// DecodeJSON - decode a single json value, rejecting trailing data
func DecodeJSON(ctx context.Context, input []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewBuffer(input))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after json value")
	}
	return nil
}
