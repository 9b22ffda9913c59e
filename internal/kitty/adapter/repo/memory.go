package repo

import (
	"context"
	"sync"
	"time"

	"github.com/kittybank/backend/internal/kitty/domain"
)

// MemoryStore is an in-process implementation of both repository ports,
// backing tests and dependency-free local runs. A single RWMutex guards all
// maps; accounts are handed out as copies so callers never share mutable
// state with the store.
type MemoryStore struct {
	mu            sync.RWMutex
	nextAccountID int64
	nextTxID      int64
	accounts      map[int64]*domain.Account
	idByName      map[string]int64
	transactions  []domain.Transaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[int64]*domain.Account),
		idByName: make(map[string]int64),
	}
}

func (s *MemoryStore) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (s *MemoryStore) FindByName(ctx context.Context, name string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.idByName[name]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := *s.accounts[id]
	return &copied, nil
}

// Create performs the existence check and the insert under one write lock,
// so racing creations of the same name yield exactly one success.
func (s *MemoryStore) Create(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.idByName[account.Name]; ok {
		return domain.ErrAccountExists
	}
	s.nextAccountID++
	account.ID = s.nextAccountID
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	stored := *account
	s.accounts[stored.ID] = &stored
	s.idByName[stored.Name] = stored.ID
	return nil
}

func (s *MemoryStore) AddToBalance(ctx context.Context, id int64, delta float64) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	account.Balance += delta
	account.UpdatedAt = time.Now()
	copied := *account
	return &copied, nil
}

func (s *MemoryStore) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTxID++
	tx.ID = s.nextTxID
	tx.CreatedAt = time.Now()
	s.transactions = append(s.transactions, *tx)
	return nil
}

func (s *MemoryStore) FindByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Transaction
	for _, tx := range s.transactions {
		if tx.AccountID == accountID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *MemoryStore) CountByAccountID(ctx context.Context, accountID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, tx := range s.transactions {
		if tx.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

// Transactions exposes the store as a domain.TransactionRepository. The
// method set is split because Create would otherwise collide with the
// account insert.
func (s *MemoryStore) Transactions() domain.TransactionRepository {
	return memoryTransactionRepo{s}
}

type memoryTransactionRepo struct {
	store *MemoryStore
}

func (r memoryTransactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	return r.store.CreateTransaction(ctx, tx)
}

func (r memoryTransactionRepo) FindByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	return r.store.FindByAccountID(ctx, accountID)
}

func (r memoryTransactionRepo) CountByAccountID(ctx context.Context, accountID int64) (int64, error) {
	return r.store.CountByAccountID(ctx, accountID)
}
