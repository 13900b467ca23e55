package errors_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	errutil "github.com/brave-intl/restpipe/libs/errors"
	testutils "github.com/brave-intl/restpipe/libs/test"
	"github.com/stretchr/testify/assert"
)

type customErr struct{}

func (ce *customErr) Error() string {
	return "custom error"
}

type listErr []error

func (l listErr) Error() string    { return "list" }
func (l listErr) Errors() []error { return l }

func TestMultiErrorUnwrap(t *testing.T) {
	var (
		err1b = errors.New("error 1b")
		err1a = fmt.Errorf("error 1a: %w", err1b)
		err1  = fmt.Errorf("error 1: %w", err1a)
		err2  = errors.New("error 2")
		err3  = &customErr{}
	)
	merr := &errutil.MultiError{}
	merr.Append(err1, err2, err3)

	var myCustomErr *customErr
	assert.True(t, errors.As(merr, &myCustomErr), "not 'as' err3")
	assert.ErrorIs(t, merr, err1a)
	assert.ErrorIs(t, merr, err1b)
	assert.ErrorIs(t, merr, err1)
	assert.ErrorIs(t, merr, err2)
}

func TestMultiErrorAppendSkipsNil(t *testing.T) {
	merr := &errutil.MultiError{}
	merr.Append(nil, errors.New("one"), nil)
	assert.Equal(t, 1, merr.Count())
	assert.Equal(t, "one", merr.Error())

	assert.NoError(t, (&errutil.MultiError{}).ErrorOrNil())
}

func TestFlatten(t *testing.T) {
	var (
		a = errors.New("a")
		b = errors.New("b")
		c = errors.New("c")
	)
	inner := &errutil.MultiError{}
	inner.Append(b, listErr{c})
	outer := &errutil.MultiError{}
	outer.Append(a, inner)

	assert.Equal(t, []error{a, b, c}, errutil.Flatten(outer))
	assert.Equal(t, []error{a}, errutil.Flatten(a))
	assert.Nil(t, errutil.Flatten(nil))
}

func TestErrorBundle_Error(t *testing.T) {
	cause := errors.New("boom")
	assert.Equal(t, "reading: boom", errutil.Wrap(cause, "reading").Error())
	assert.Equal(t, "reading", errutil.New(nil, "reading", nil).Error())
	assert.ErrorIs(t, errutil.Wrap(cause, "reading"), cause)
}

func TestErrorBundle_DataToString_DataNil(t *testing.T) {
	err := errutil.Wrap(errors.New(testutils.RandomString()), testutils.RandomString())
	var actual *errutil.ErrorBundle
	errors.As(err, &actual)
	assert.Equal(t, "no error bundle data", actual.DataToString())
}

func TestErrorBundle_DataToString_MarshallError(t *testing.T) {
	unsupportedData := func() {}
	sut := errutil.New(errors.New(testutils.RandomString()), testutils.RandomString(), unsupportedData)

	var actual *errutil.ErrorBundle
	errors.As(sut, &actual)

	assert.Contains(t, actual.DataToString(), "error retrieving error bundle data")
}

func TestErrorBundle_DataToString(t *testing.T) {
	errorData := testutils.RandomString()
	sut := errutil.New(errors.New(testutils.RandomString()), testutils.RandomString(), errorData)

	expected, err := json.Marshal(errorData)
	assert.NoError(t, err)

	var actual *errutil.ErrorBundle
	errors.As(sut, &actual)

	assert.Equal(t, string(expected), actual.DataToString())
}
