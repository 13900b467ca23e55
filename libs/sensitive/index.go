// Package sensitive answers which fields of a payload shape must never be
// written to logs verbatim.
package sensitive

import (
	"reflect"

	"github.com/brave-intl/restpipe/libs/set"
	cache "github.com/patrickmn/go-cache"
)

// Marked is implemented by payload types declaring their sensitive fields by
// their serialized (json) names. The answer must depend only on the type.
type Marked interface {
	SensitiveFields() []string
}

// Index memoizes the sensitive field set of each payload shape for the life of
// the process
type Index struct {
	shapes *cache.Cache
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{
		shapes: cache.New(cache.NoExpiration, 0),
	}
}

var defaultIndex = NewIndex()

// Default returns the process wide index
func Default() *Index {
	return defaultIndex
}

// FieldsFor returns the sensitive fields of the payload using the process wide index
func FieldsFor(payload interface{}) set.Frozen {
	return defaultIndex.FieldsFor(payload)
}

// FieldsFor returns the sensitive fields of payload's shape. Nil payloads have none.
// Concurrent first lookups of a shape may each compute it, but only the first
// result is ever published and every caller returns that one.
func (i *Index) FieldsFor(payload interface{}) set.Frozen {
	if payload == nil {
		return set.Empty
	}
	shape := reflect.TypeOf(payload)
	for shape.Kind() == reflect.Ptr {
		shape = shape.Elem()
	}
	key := shapeKey(shape)

	if fields, ok := i.shapes.Get(key); ok {
		return fields.(set.Frozen)
	}

	computed := compute(shape)
	if err := i.shapes.Add(key, computed, cache.NoExpiration); err != nil {
		// another caller published first
		if fields, ok := i.shapes.Get(key); ok {
			return fields.(set.Frozen)
		}
	}
	return computed
}

// Len is the number of shapes seen so far
func (i *Index) Len() int {
	return i.shapes.ItemCount()
}

func compute(shape reflect.Type) set.Frozen {
	// a zero instance answers for the shape, whichever receiver the method uses
	if m, ok := reflect.New(shape).Interface().(Marked); ok {
		return set.Freeze(m.SensitiveFields()...)
	}
	return set.Empty
}

func shapeKey(shape reflect.Type) string {
	if shape.Name() != "" && shape.PkgPath() != "" {
		return shape.PkgPath() + "." + shape.Name()
	}
	return shape.String()
}
