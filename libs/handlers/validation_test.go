package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/brave-intl/restpipe/libs/responses"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountKey struct {
	AccountID uuid.UUID `valid:"requiredUUID"`
}

type withdrawal struct {
	Key       *accountKey `json:"-"`
	Reference string      `json:"reference" valid:"required"`
	Amount    string      `json:"amount" valid:"numeric"`
}

type limited struct {
	Amount int `json:"amount"`
}

func (l *limited) Validate(ctx context.Context) error {
	if l.Amount > 100 {
		return errors.New("amount over limit")
	}
	return nil
}

func (l *limited) ValidationErrors(ctx context.Context) []responses.ErrorInfo {
	if l.Amount < 0 {
		return []responses.ErrorInfo{{Message: "amount is negative", Reason: ReasonValidationError}}
	}
	return nil
}

func TestValidateRequestParseErrorsTakePrecedence(t *testing.T) {
	f := ValidateRequest(context.Background(), []error{errors.New("unexpected EOF")}, nil)

	require.NotNil(t, f)
	assert.Equal(t, []responses.ErrorInfo{{Message: "unexpected EOF", Reason: ReasonParseError}}, f.Details)
}

func TestValidateRequestNull(t *testing.T) {
	var missing *withdrawal
	for _, req := range []interface{}{nil, missing} {
		f := ValidateRequest(context.Background(), nil, req)
		require.NotNil(t, f)
		require.Len(t, f.Details, 1)
		assert.Equal(t, ReasonNullRequest, f.Details[0].Reason)
	}
}

func TestValidateRequestStructTags(t *testing.T) {
	f := ValidateRequest(context.Background(), nil, &withdrawal{Key: &accountKey{}, Amount: "ten"})

	require.NotNil(t, f)
	assert.Len(t, f.Details, 3)
	for _, d := range f.Details {
		assert.Equal(t, ReasonValidationError, d.Reason)
	}
	status, _ := Envelope(f)
	assert.Equal(t, 400, status)
}

func TestValidateRequestValid(t *testing.T) {
	req := &withdrawal{
		Key:       &accountKey{AccountID: uuid.NewV4()},
		Reference: "rent",
		Amount:    "10",
	}
	assert.Nil(t, ValidateRequest(context.Background(), nil, req))
}

func TestValidateRequestSelfChecks(t *testing.T) {
	f := ValidateRequest(context.Background(), nil, &limited{Amount: 101})
	require.NotNil(t, f)
	assert.Equal(t, []responses.ErrorInfo{{Message: "amount over limit", Reason: ReasonValidationError}}, f.Details)

	f = ValidateRequest(context.Background(), nil, &limited{Amount: -1})
	require.NotNil(t, f)
	assert.Equal(t, "amount is negative", f.Details[0].Message)

	assert.Nil(t, ValidateRequest(context.Background(), nil, &limited{Amount: 5}))
}

func TestValidateRequestNonStruct(t *testing.T) {
	assert.Nil(t, ValidateRequest(context.Background(), nil, &[]int{1}))
}
