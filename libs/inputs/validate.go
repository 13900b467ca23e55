package inputs

import "context"

// Validatable - an interface for types that check their own contract
type Validatable interface {
	Validate(context.Context) error
}

// Validate - a validatable thing
func Validate(ctx context.Context, v Validatable) error {
	return v.Validate(ctx)
}
