package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/brave-intl/restpipe/libs/set"
)

const maskLength = 10

// MaskToken replaces every sensitive value in logged bodies
var MaskToken = strings.Repeat("*", maskLength)

var (
	maskedValue = json.RawMessage(`"` + MaskToken + `"`)

	// ErrNotAnObject is returned when a masked body is not a json object
	ErrNotAnObject = errors.New("body is not a json object")
)

// Mask rewrites the json object in raw so that every key in fields present on
// the object found at path carries MaskToken. Keys match case insensitively,
// as encoding/json binds them. Key order is preserved, absent fields are not
// added, and the result is compact.
func Mask(raw []byte, fields set.Frozen, path ...string) ([]byte, error) {
	masked, err := maskObject(raw, fields, path)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Compact(&out, masked); err != nil {
		return nil, fmt.Errorf("failed to compact masked body: %w", err)
	}
	return out.Bytes(), nil
}

func maskObject(raw []byte, fields set.Frozen, path []string) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrNotAnObject
	}

	var out bytes.Buffer
	out.WriteByte('{')
	for first := true; dec.More(); first = false {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}

		switch {
		case len(path) > 0 && key == path[0]:
			if nested, err := maskObject(value, fields, path[1:]); err == nil {
				value = nested
			} else if !errors.Is(err, ErrNotAnObject) {
				return nil, err
			}
		case len(path) == 0 && fields.ContainsFold(key):
			value = maskedValue
		}

		if !first {
			out.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		out.Write(k)
		out.WriteByte(':')
		out.Write(value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	out.WriteByte('}')
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after json object")
	}
	return out.Bytes(), nil
}
