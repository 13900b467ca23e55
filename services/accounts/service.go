package accounts

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"time"

	errorutils "github.com/brave-intl/restpipe/libs/errors"
	"github.com/brave-intl/restpipe/libs/handlers"
	"github.com/brave-intl/restpipe/libs/logging"
	"github.com/gocarina/gocsv"
	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

// ErrCodeAccountNotFound is the error code of lookups for unknown accounts
const ErrCodeAccountNotFound = "ACCOUNT_NOT_FOUND"

// Service contains datastore
type Service struct {
	datastore Datastore
	now       func() time.Time
}

// NewService - create a new accounts service structure
func NewService(datastore Datastore) *Service {
	return &Service{
		datastore: datastore,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// InitService creates a service backed by the in memory datastore
func InitService(ctx context.Context) (*Service, error) {
	logger := logging.Logger(ctx, "accounts.InitService")
	logger.Info().Msg("creating new accounts service with in memory datastore")
	return NewService(NewMemory()), nil
}

func notFound(err error, id uuid.UUID) error {
	if errors.Is(err, errorutils.ErrNotFound) {
		return handlers.NotFound(ErrCodeAccountNotFound, fmt.Sprintf("account %s not found", id))
	}
	return err
}

// CreateAccount opens an account, a positive deposit is recorded as its first entry
func (s *Service) CreateAccount(ctx context.Context, owner, nickname, pin string, deposit decimal.Decimal) (*Account, error) {
	now := s.now()
	account := &Account{
		ID:        uuid.NewV4(),
		Owner:     owner,
		Nickname:  nickname,
		Pin:       pin,
		Balance:   deposit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.datastore.InsertAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	if deposit.IsPositive() {
		entry := &Entry{
			ID:        uuid.NewV4(),
			AccountID: account.ID,
			Kind:      EntryDeposit,
			Amount:    deposit,
			Balance:   deposit,
			Reference: "opening deposit",
			CreatedAt: now,
		}
		if err := s.datastore.AppendEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to record opening deposit: %w", err)
		}
	}
	logging.Logger(ctx, "accounts.CreateAccount").Debug().Str("account_id", account.ID.String()).Msg("account created")
	return account, nil
}

// GetAccount returns an account, a NotFound AppError for unknown ids
func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	account, err := s.datastore.GetAccount(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}
	return account, nil
}

// UpdateAccount changes the nickname and pin of an account, nil leaves the attribute unchanged
func (s *Service) UpdateAccount(ctx context.Context, id uuid.UUID, nickname, pin *string) (*Account, error) {
	account, err := s.datastore.UpdateAccount(ctx, id, nickname, pin)
	if err != nil {
		return nil, notFound(err, id)
	}
	return account, nil
}

// Withdraw debits amount from the account after checking pin
func (s *Service) Withdraw(ctx context.Context, id uuid.UUID, pin string, amount decimal.Decimal, reference string) (*Account, *Entry, error) {
	account, err := s.datastore.GetAccount(ctx, id)
	if err != nil {
		return nil, nil, notFound(err, id)
	}
	if subtle.ConstantTimeCompare([]byte(account.Pin), []byte(pin)) != 1 {
		return nil, nil, ErrPinMismatch
	}

	account, entry, err := s.datastore.Debit(ctx, id, amount, reference)
	if err != nil {
		return nil, nil, notFound(err, id)
	}
	return account, entry, nil
}

// StatementRow is one csv line of a statement
type StatementRow struct {
	EntryID   string `csv:"entry_id"`
	Kind      string `csv:"kind"`
	Amount    string `csv:"amount"`
	Balance   string `csv:"balance"`
	Reference string `csv:"reference"`
	CreatedAt string `csv:"created_at"`
}

// Statement streams the entries of an account as csv. The reader must be closed.
func (s *Service) Statement(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	entries, err := s.datastore.ListEntries(ctx, id)
	if err != nil {
		return nil, notFound(err, id)
	}

	rows := make([]StatementRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, StatementRow{
			EntryID:   e.ID.String(),
			Kind:      e.Kind,
			Amount:    e.Amount.String(),
			Balance:   e.Balance.String(),
			Reference: e.Reference,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
	}

	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(gocsv.Marshal(&rows, pw))
	}()
	return pr, nil
}
