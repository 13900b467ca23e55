package context

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GetStringFromContext - given a CTXKey return the string value from the context if it exists
func GetStringFromContext(ctx context.Context, key CTXKey) (string, error) {
	v := ctx.Value(key)
	if v == nil {
		// value not on context
		return "", ErrNotInContext
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	// value not a string
	return "", ErrValueWrongType
}

// GetBoolFromContext - given a CTXKey return the bool value from the context if it exists
func GetBoolFromContext(ctx context.Context, key CTXKey) (bool, error) {
	v := ctx.Value(key)
	if v == nil {
		return false, ErrNotInContext
	}
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, ErrValueWrongType
}

// GetLogLevelFromContext - given a CTXKey return the log level from the context,
// defaulting to info when missing or unparsable
func GetLogLevelFromContext(ctx context.Context, key CTXKey) (zerolog.Level, error) {
	switch v := ctx.Value(key).(type) {
	case nil:
		return zerolog.InfoLevel, ErrNotInContext
	case zerolog.Level:
		return v, nil
	case string:
		level, err := zerolog.ParseLevel(v)
		if err != nil || v == "" {
			return zerolog.InfoLevel, ErrValueWrongType
		}
		return level, nil
	default:
		return zerolog.InfoLevel, ErrValueWrongType
	}
}

// GetRequestReceived - return the time the request entered the server, if recorded
func GetRequestReceived(ctx context.Context) (time.Time, error) {
	v := ctx.Value(RequestReceivedCTXKey)
	if v == nil {
		return time.Time{}, ErrNotInContext
	}
	if t, ok := v.(time.Time); ok {
		return t, nil
	}
	return time.Time{}, ErrValueWrongType
}

// GetLogger - return the logger value from the context if it exists
func GetLogger(ctx context.Context) (*zerolog.Logger, error) {
	l := zerolog.Ctx(ctx)
	if l == nil || l.GetLevel() == zerolog.Disabled {
		// value not on context
		return nil, ErrNotInContext
	}
	return l, nil
}
