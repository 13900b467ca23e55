package sensitive

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type login struct {
	Username string `json:"username"`
	Password string `json:"password"`
	PIN      string `json:"pin"`
}

func (login) SensitiveFields() []string {
	return []string{"password", "pin"}
}

type profile struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

func (p *profile) SensitiveFields() []string {
	return []string{"email"}
}

type plain struct {
	Public string `json:"public"`
}

type counting struct{}

var countingCalls = make(chan struct{}, 1024)

func (counting) SensitiveFields() []string {
	countingCalls <- struct{}{}
	return []string{"secret"}
}

func TestFieldsForValueReceiver(t *testing.T) {
	idx := NewIndex()

	fields := idx.FieldsFor(login{})
	assert.Equal(t, []string{"password", "pin"}, fields.Items())

	// the pointer shape resolves to the same entry
	assert.Equal(t, fields, idx.FieldsFor(&login{}))
	assert.Equal(t, 1, idx.Len())
}

func TestFieldsForPointerReceiver(t *testing.T) {
	idx := NewIndex()

	assert.Equal(t, []string{"email"}, idx.FieldsFor(&profile{}).Items())
	assert.Equal(t, []string{"email"}, idx.FieldsFor(profile{}).Items())
}

func TestFieldsForTypedNilPointer(t *testing.T) {
	idx := NewIndex()

	var p *profile
	assert.Equal(t, []string{"email"}, idx.FieldsFor(p).Items())
}

func TestFieldsForUnmarkedAndNil(t *testing.T) {
	idx := NewIndex()

	assert.True(t, idx.FieldsFor(plain{}).IsEmpty())
	assert.True(t, idx.FieldsFor(nil).IsEmpty())
	assert.True(t, idx.FieldsFor(map[string]interface{}{"secret": 1}).IsEmpty())
}

func TestFieldsForComputesOncePerShape(t *testing.T) {
	idx := NewIndex()

	for len(countingCalls) > 0 {
		<-countingCalls
	}

	const callers = 64
	results := make([][]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = idx.FieldsFor(counting{}).Items()
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, []string{"secret"}, r)
	}

	before := len(countingCalls)
	for i := 0; i < 10; i++ {
		idx.FieldsFor(&counting{})
	}
	assert.Equal(t, before, len(countingCalls), "published shapes are not recomputed")
	assert.Equal(t, 1, idx.Len())
}

func TestDefaultIndex(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.Equal(t, []string{"password", "pin"}, FieldsFor(&login{}).Items())
}
