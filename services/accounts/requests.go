package accounts

import (
	"context"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/brave-intl/restpipe/libs/handlers"
	"github.com/brave-intl/restpipe/libs/inputs"
	"github.com/brave-intl/restpipe/libs/responses"
	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

const (
	minPinLength = 4
	maxPinLength = 8
	// maxLoggedBodyLength caps how much of an account response is logged
	maxLoggedBodyLength = 512
)

// AccountKey identifies an account from the route
type AccountKey struct {
	AccountID uuid.UUID `valid:"requiredUUID"`
}

// IdentifierFields implements inputs.Identifier
func (k *AccountKey) IdentifierFields() []inputs.Field {
	return []inputs.Field{inputs.UUIDField("accountId", &k.AccountID)}
}

// RequestContext is embedded by the requests that carry a caller context
type RequestContext struct {
	Caller        string `json:"callerContext,omitempty"`
	correlationID string
}

// CallerContext implements correlation.CallerContexter
func (c *RequestContext) CallerContext() string { return c.Caller }

// CorrelationID implements correlation.Carrier
func (c *RequestContext) CorrelationID() string { return c.correlationID }

// SetCorrelationID implements correlation.Carrier
func (c *RequestContext) SetCorrelationID(id string) { c.correlationID = id }

// CreateAccountRequest - POST /v1/accounts
type CreateAccountRequest struct {
	RequestContext
	Owner          string          `json:"owner" valid:"required"`
	Nickname       string          `json:"nickname,omitempty" valid:"stringlength(0|64)"`
	Pin            string          `json:"pin" valid:"required,numeric,stringlength(4|8)"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
}

// SensitiveFields implements sensitive.Marked
func (CreateAccountRequest) SensitiveFields() []string { return []string{"pin"} }

// ValidationErrors implements handlers.ContractValidator
func (r *CreateAccountRequest) ValidationErrors(ctx context.Context) []responses.ErrorInfo {
	if r.InitialDeposit.IsNegative() {
		return []responses.ErrorInfo{{
			Message: "initialDeposit: must not be negative",
			Reason:  handlers.ReasonValidationError,
		}}
	}
	return nil
}

// GetAccountRequest - GET /v1/accounts/{accountId}
type GetAccountRequest struct {
	inputs.WithIdentifier[AccountKey, *AccountKey]
}

// FormatResponseForLogging implements logging.ResponseLogFormatter
func (GetAccountRequest) FormatResponseForLogging(body, mediaType string) string {
	if len(body) <= maxLoggedBodyLength {
		return body
	}
	return body[:maxLoggedBodyLength] + "..."
}

// UpdateAccountRequest - PATCH /v1/accounts/{accountId}, only the attributes
// present in the body change
type UpdateAccountRequest struct {
	inputs.WithIdentifier[AccountKey, *AccountKey]
	RequestContext
	Nickname *string `json:"nickname,omitempty"`
	Pin      *string `json:"pin,omitempty"`
}

// SensitiveFields implements sensitive.Marked
func (UpdateAccountRequest) SensitiveFields() []string { return []string{"pin"} }

// ValidationErrors implements handlers.ContractValidator
func (r *UpdateAccountRequest) ValidationErrors(ctx context.Context) []responses.ErrorInfo {
	var details []responses.ErrorInfo
	if r.Nickname == nil && r.Pin == nil {
		details = append(details, responses.ErrorInfo{
			Message: "at least one of nickname, pin is required",
			Reason:  handlers.ReasonValidationError,
		})
	}
	if r.Nickname != nil && len(*r.Nickname) > 64 {
		details = append(details, responses.ErrorInfo{
			Message: "nickname: longer than 64 characters",
			Reason:  handlers.ReasonValidationError,
		})
	}
	if r.Pin != nil && !validPin(*r.Pin) {
		details = append(details, responses.ErrorInfo{
			Message: "pin: must be 4 to 8 digits",
			Reason:  handlers.ReasonValidationError,
		})
	}
	return details
}

func validPin(pin string) bool {
	return govalidator.IsNumeric(pin) && len(pin) >= minPinLength && len(pin) <= maxPinLength
}

// WithdrawRequest - POST /v1/accounts/{accountId}/withdrawals
type WithdrawRequest struct {
	inputs.WithIdentifier[AccountKey, *AccountKey]
	RequestContext
	Amount    decimal.Decimal `json:"amount" valid:"required,positiveDecimal"`
	Pin       string          `json:"pin" valid:"required"`
	Reference string          `json:"reference,omitempty" valid:"stringlength(0|128)"`
}

// SensitiveFields implements sensitive.Marked
func (WithdrawRequest) SensitiveFields() []string { return []string{"pin"} }

// StatementRequest - GET /v1/accounts/{accountId}/statement
type StatementRequest struct {
	inputs.WithIdentifier[AccountKey, *AccountKey]
}

// AccountResponse is the public view of an account
type AccountResponse struct {
	ID          uuid.UUID       `json:"id"`
	Owner       string          `json:"owner"`
	Nickname    string          `json:"nickname,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Correlation string          `json:"correlationId,omitempty"`
}

// CorrelationID implements correlation.Carrier
func (r *AccountResponse) CorrelationID() string { return r.Correlation }

// SetCorrelationID implements correlation.Carrier
func (r *AccountResponse) SetCorrelationID(id string) { r.Correlation = id }

func newAccountResponse(a *Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Owner:     a.Owner,
		Nickname:  a.Nickname,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// WithdrawalResponse acknowledges a withdrawal
type WithdrawalResponse struct {
	AccountID   uuid.UUID       `json:"accountId"`
	EntryID     uuid.UUID       `json:"entryId"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
	Reference   string          `json:"reference,omitempty"`
	Correlation string          `json:"correlationId,omitempty"`
}

// CorrelationID implements correlation.Carrier
func (r *WithdrawalResponse) CorrelationID() string { return r.Correlation }

// SetCorrelationID implements correlation.Carrier
func (r *WithdrawalResponse) SetCorrelationID(id string) { r.Correlation = id }
