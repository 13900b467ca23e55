package accounts

//go:generate mockgen -source=./datastore.go -destination=./mock/mock_datastore.go -package=mock_accounts

import (
	"context"
	"fmt"
	"sync"
	"time"

	errorutils "github.com/brave-intl/restpipe/libs/errors"
	"github.com/patrickmn/go-cache"
	uuid "github.com/satori/go.uuid"
	"github.com/shopspring/decimal"
)

// Datastore holds accounts and their entries
type Datastore interface {
	// InsertAccount stores a new account
	InsertAccount(ctx context.Context, account *Account) error
	// GetAccount returns errorutils.ErrNotFound for unknown ids
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	// UpdateAccount sets the non nil attributes
	UpdateAccount(ctx context.Context, id uuid.UUID, nickname, pin *string) (*Account, error)
	// AppendEntry records a movement without touching the balance
	AppendEntry(ctx context.Context, entry *Entry) error
	// Debit atomically lowers the balance by amount and records the entry,
	// ErrInsufficientFunds when the balance is lower than amount
	Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal, reference string) (*Account, *Entry, error)
	// ListEntries returns the entries of an account, oldest first
	ListEntries(ctx context.Context, id uuid.UUID) ([]Entry, error)
}

// Memory is a process local Datastore
type Memory struct {
	mu       sync.Mutex
	accounts *cache.Cache
	entries  *cache.Cache
	now      func() time.Time
}

// NewMemory creates an empty in memory datastore
func NewMemory() *Memory {
	return &Memory{
		accounts: cache.New(cache.NoExpiration, 0),
		entries:  cache.New(cache.NoExpiration, 0),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// InsertAccount implements Datastore
func (m *Memory) InsertAccount(ctx context.Context, account *Account) error {
	stored := *account
	if err := m.accounts.Add(account.ID.String(), &stored, cache.NoExpiration); err != nil {
		return fmt.Errorf("failed to insert account %s: %w", account.ID, err)
	}
	return nil
}

// GetAccount implements Datastore
func (m *Memory) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(id)
}

func (m *Memory) get(id uuid.UUID) (*Account, error) {
	v, ok := m.accounts.Get(id.String())
	if !ok {
		return nil, errorutils.ErrNotFound
	}
	account := *v.(*Account)
	return &account, nil
}

// UpdateAccount implements Datastore
func (m *Memory) UpdateAccount(ctx context.Context, id uuid.UUID, nickname, pin *string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, err := m.get(id)
	if err != nil {
		return nil, err
	}
	if nickname != nil {
		account.Nickname = *nickname
	}
	if pin != nil {
		account.Pin = *pin
	}
	account.UpdatedAt = m.now()
	m.accounts.Set(id.String(), account, cache.NoExpiration)

	result := *account
	return &result, nil
}

// AppendEntry implements Datastore
func (m *Memory) AppendEntry(ctx context.Context, entry *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.get(entry.AccountID); err != nil {
		return err
	}
	m.append(*entry)
	return nil
}

func (m *Memory) append(entry Entry) {
	var entries []Entry
	if v, ok := m.entries.Get(entry.AccountID.String()); ok {
		entries = v.([]Entry)
	}
	// copy on append so listed slices stay stable
	next := make([]Entry, len(entries), len(entries)+1)
	copy(next, entries)
	m.entries.Set(entry.AccountID.String(), append(next, entry), cache.NoExpiration)
}

// Debit implements Datastore
func (m *Memory) Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal, reference string) (*Account, *Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, err := m.get(id)
	if err != nil {
		return nil, nil, err
	}
	if account.Balance.LessThan(amount) {
		return nil, nil, ErrInsufficientFunds
	}

	now := m.now()
	account.Balance = account.Balance.Sub(amount)
	account.UpdatedAt = now
	m.accounts.Set(id.String(), account, cache.NoExpiration)

	entry := Entry{
		ID:        uuid.NewV4(),
		AccountID: id,
		Kind:      EntryWithdrawal,
		Amount:    amount,
		Balance:   account.Balance,
		Reference: reference,
		CreatedAt: now,
	}
	m.append(entry)

	result := *account
	return &result, &entry, nil
}

// ListEntries implements Datastore
func (m *Memory) ListEntries(ctx context.Context, id uuid.UUID) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.get(id); err != nil {
		return nil, err
	}
	v, ok := m.entries.Get(id.String())
	if !ok {
		return nil, nil
	}
	return v.([]Entry), nil
}
