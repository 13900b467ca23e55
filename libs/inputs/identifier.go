package inputs

import (
	"encoding"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	uuid "github.com/satori/go.uuid"
)

// Identifier is implemented by path derived key structs, declaring which
// route values fill which of their fields
type Identifier interface {
	IdentifierFields() []Field
}

// Identified is implemented by requests carrying a resource identifier slot
type Identified interface {
	// ResourceIdentifier returns the request's identifier, attaching an empty
	// one first when the slot is unset
	ResourceIdentifier() Identifier
}

// WithIdentifier is embedded in request types to declare an identifier slot of
// type *T. The identifier is never read from the body.
type WithIdentifier[T any, PT interface {
	*T
	Identifier
}] struct {
	Identifier PT `json:"-"`
}

// ResourceIdentifier implements Identified
func (w *WithIdentifier[T, PT]) ResourceIdentifier() Identifier {
	if w.Identifier == nil {
		w.Identifier = PT(new(T))
	}
	return w.Identifier
}

// Field binds one named route value onto a typed destination. Destinations are
// only written when the raw value coerces.
type Field struct {
	Name   string
	coerce func(raw string) error
}

// Bind coerces raw onto the field's destination
func (f Field) Bind(raw string) error {
	if f.coerce == nil {
		return fmt.Errorf("field %s has no destination", f.Name)
	}
	if err := f.coerce(raw); err != nil {
		return fmt.Errorf("failed to bind %s: %w", f.Name, err)
	}
	return nil
}

// UUIDField binds a uuid
func UUIDField(name string, dst *uuid.UUID) Field {
	return Field{Name: name, coerce: func(raw string) error {
		v, err := uuid.FromString(raw)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}}
}

// StringField binds the raw value unchanged
func StringField(name string, dst *string) Field {
	return Field{Name: name, coerce: func(raw string) error {
		*dst = raw
		return nil
	}}
}

// IntField binds a base 10 int
func IntField(name string, dst *int) Field {
	return Field{Name: name, coerce: func(raw string) error {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}}
}

// Int64Field binds a base 10 int64
func Int64Field(name string, dst *int64) Field {
	return Field{Name: name, coerce: func(raw string) error {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}}
}

// BoolField binds anything strconv.ParseBool accepts
func BoolField(name string, dst *bool) Field {
	return Field{Name: name, coerce: func(raw string) error {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}}
}

// DecimalField binds an arbitrary precision decimal
func DecimalField(name string, dst *decimal.Decimal) Field {
	return Field{Name: name, coerce: func(raw string) error {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}}
}

// TextField binds any type that unmarshals itself from text. The destination is
// decoded into a scratch value first so failures leave it untouched.
func TextField[T any, PT interface {
	*T
	encoding.TextUnmarshaler
}](name string, dst PT) Field {
	return Field{Name: name, coerce: func(raw string) error {
		var v T
		if err := PT(&v).UnmarshalText([]byte(raw)); err != nil {
			return err
		}
		*dst = v
		return nil
	}}
}
