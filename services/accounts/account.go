package accounts

import (
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

// Entry kinds
const (
	EntryDeposit    = "deposit"
	EntryWithdrawal = "withdrawal"
)

// Account is a stored account. Pin never leaves the service.
type Account struct {
	ID        uuid.UUID
	Owner     string
	Nickname  string
	Pin       string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Entry is one movement on an account
type Entry struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Kind      string
	Amount    decimal.Decimal
	Balance   decimal.Decimal
	Reference string
	CreatedAt time.Time
}

// BusinessError is a refusal with a stable code clients may branch on
type BusinessError struct {
	Code    string
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

// ErrorCode is the stable code of the refusal
func (e *BusinessError) ErrorCode() string {
	return e.Code
}

var (
	// ErrInsufficientFunds - the withdrawal is larger than the balance
	ErrInsufficientFunds = &BusinessError{Code: "INSUFFICIENT_FUNDS", Message: "insufficient funds"}
	// ErrPinMismatch - the pin does not match the account
	ErrPinMismatch = &BusinessError{Code: "PIN_MISMATCH", Message: "pin does not match"}
)
