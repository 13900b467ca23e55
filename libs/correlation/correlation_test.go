package correlation

import (
	"context"
	"fmt"
	"sync"
	"testing"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginGeneratesID(t *testing.T) {
	ctx, h := Begin(context.Background(), nil)
	defer h.End()

	c, ok := Current(ctx)
	require.True(t, ok)
	assert.False(t, uuid.Equal(uuid.Nil, c.ID()))
	assert.Equal(t, uuid.V4, c.ID().Version())
	assert.Equal(t, c.ID().String(), ID(ctx))
	assert.False(t, c.CreatedAt().IsZero())
}

func TestBeginWithExistingID(t *testing.T) {
	existing := uuid.Must(uuid.FromString("0f8fad5b-d9cb-469f-a165-70867728950e"))
	ctx, h := Begin(context.Background(), &existing)
	defer h.End()

	assert.Equal(t, "0f8fad5b-d9cb-469f-a165-70867728950e", ID(ctx))
}

func TestBeginWithNilUUIDGenerates(t *testing.T) {
	zero := uuid.Nil
	ctx, h := Begin(context.Background(), &zero)
	defer h.End()

	c, ok := Current(ctx)
	require.True(t, ok)
	assert.False(t, uuid.Equal(uuid.Nil, c.ID()))
}

func TestCurrentWithoutBegin(t *testing.T) {
	_, ok := Current(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "", ID(context.Background()))
	assert.False(t, SetAnnotation(context.Background(), "k", "v"))
}

func TestEndIsIdempotent(t *testing.T) {
	ctx, h := Begin(context.Background(), nil)
	h.End()
	h.End()

	_, ok := Current(ctx)
	assert.False(t, ok)
	assert.Equal(t, "", ID(ctx))

	var nilHandle *Handle
	assert.NotPanics(t, nilHandle.End)
}

func TestAnnotationsLastWriteWins(t *testing.T) {
	ctx, h := Begin(context.Background(), nil)
	defer h.End()

	require.True(t, SetAnnotation(ctx, CallerContextAnnotation, "first"))
	require.True(t, SetAnnotation(ctx, CallerContextAnnotation, "second"))

	c, _ := Current(ctx)
	v, ok := c.Annotation(CallerContextAnnotation)
	assert.True(t, ok)
	assert.Equal(t, "second", v)

	snapshot := c.Annotations()
	snapshot[CallerContextAnnotation] = "mutated"
	v, _ = c.Annotation(CallerContextAnnotation)
	assert.Equal(t, "second", v)
}

func TestConcurrentRequestsAreIsolated(t *testing.T) {
	const requests = 32

	var wg sync.WaitGroup
	seen := make([]string, requests)
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx, h := Begin(context.Background(), nil)
			defer h.End()
			want := ID(ctx)

			// work fanned out by the request observes the same correlation
			var inner sync.WaitGroup
			for j := 0; j < 4; j++ {
				inner.Add(1)
				go func(j int) {
					defer inner.Done()
					assert.Equal(t, want, ID(ctx))
					SetAnnotation(ctx, fmt.Sprintf("worker-%d", j), want)
				}(j)
			}
			inner.Wait()

			c, _ := Current(ctx)
			for j := 0; j < 4; j++ {
				v, ok := c.Annotation(fmt.Sprintf("worker-%d", j))
				assert.True(t, ok)
				assert.Equal(t, want, v)
			}
			seen[i] = want
		}(i)
	}
	wg.Wait()

	unique := map[string]struct{}{}
	for _, id := range seen {
		unique[id] = struct{}{}
	}
	assert.Len(t, unique, requests)
}

func TestParseID(t *testing.T) {
	id := ParseID(" 0f8fad5b-d9cb-469f-a165-70867728950e ")
	require.NotNil(t, id)
	assert.Equal(t, "0f8fad5b-d9cb-469f-a165-70867728950e", id.String())

	assert.Nil(t, ParseID(""))
	assert.Nil(t, ParseID("not-a-uuid"))
	assert.Nil(t, ParseID(uuid.Nil.String()))
}
