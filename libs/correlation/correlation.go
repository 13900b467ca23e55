// Package correlation tracks the logical request identity shared by every log
// event of one request, across goroutines spawned on its behalf.
package correlation

import (
	"context"
	"strings"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"
)

const (
	// HeaderKey carries the correlation id across service hops
	HeaderKey = "X-Correlation-ID"
	// CallerContextAnnotation records the caller supplied context on the correlation
	CallerContextAnnotation = "CallerContext"
)

type correlationKey struct{}

// CallerContexter is implemented by requests that carry an opaque caller context
type CallerContexter interface {
	CallerContext() string
}

// Carrier is implemented by payloads with a slot for the correlation id
type Carrier interface {
	CorrelationID() string
	SetCorrelationID(string)
}

// Correlation is the live identity of one logical request
type Correlation struct {
	id        uuid.UUID
	createdAt time.Time

	mu          sync.RWMutex
	annotations map[string]string
	ended       bool
}

// ID returns the correlation identifier
func (c *Correlation) ID() uuid.UUID {
	return c.id
}

// CreatedAt returns when the correlation began
func (c *Correlation) CreatedAt() time.Time {
	return c.createdAt
}

// Annotate records a key/value pair, later writes to the same key win
func (c *Correlation) Annotate(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.annotations[key] = value
}

// Annotation returns a single annotation
func (c *Correlation) Annotation(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.annotations[key]
	return v, ok
}

// Annotations returns a snapshot of every annotation
func (c *Correlation) Annotations() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]string, len(c.annotations))
	for k, v := range c.annotations {
		out[k] = v
	}
	return out
}

func (c *Correlation) live() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.ended
}

// Handle ends the correlation it was returned with
type Handle struct {
	c    *Correlation
	once sync.Once
}

// Correlation returns the correlation owned by this handle
func (h *Handle) Correlation() *Correlation {
	return h.c
}

// End closes the correlation. Calling End more than once has no further effect.
func (h *Handle) End() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		h.c.mu.Lock()
		h.c.ended = true
		h.c.mu.Unlock()
	})
}

// Begin starts a correlation and attaches it to the returned context. A nil or
// zero existingID produces a fresh random identifier.
func Begin(ctx context.Context, existingID *uuid.UUID) (context.Context, *Handle) {
	id := uuid.Nil
	if existingID != nil {
		id = *existingID
	}
	if uuid.Equal(id, uuid.Nil) {
		id = uuid.NewV4()
	}
	c := &Correlation{
		id:          id,
		createdAt:   time.Now().UTC(),
		annotations: map[string]string{},
	}
	return context.WithValue(ctx, correlationKey{}, c), &Handle{c: c}
}

// Current returns the live correlation of ctx. Contexts that never began one,
// or whose correlation has ended, report false.
func Current(ctx context.Context) (*Correlation, bool) {
	if ctx == nil {
		return nil, false
	}
	c, ok := ctx.Value(correlationKey{}).(*Correlation)
	if !ok || c == nil || !c.live() {
		return nil, false
	}
	return c, true
}

// ID returns the current correlation id as a string, empty when uncorrelated
func ID(ctx context.Context) string {
	if c, ok := Current(ctx); ok {
		return c.ID().String()
	}
	return ""
}

// SetAnnotation annotates the current correlation, reporting whether one was live
func SetAnnotation(ctx context.Context, key, value string) bool {
	c, ok := Current(ctx)
	if !ok {
		return false
	}
	c.Annotate(key, value)
	return true
}

// ParseID parses an inbound correlation id, returning nil for anything that is
// not a non-zero uuid
func ParseID(raw string) *uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := uuid.FromString(raw)
	if err != nil || uuid.Equal(id, uuid.Nil) {
		return nil
	}
	return &id
}
