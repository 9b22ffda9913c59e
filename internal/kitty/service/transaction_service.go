package service

import (
	"context"
	"fmt"

	"github.com/kittybank/backend/internal/kitty/domain"
)

// Availability thresholds. Fixed by the business rule, not configurable.
const (
	availableMinTransactions = 3
	availableMinBalance      = 10.0
)

// TransactionService applies transactions to account balances and answers
// history and availability queries. Like AccountService it is stateless:
// every call re-reads current state from the store.
type TransactionService struct {
	accounts     domain.AccountRepository
	transactions domain.TransactionRepository
}

func NewTransactionService(accounts domain.AccountRepository, transactions domain.TransactionRepository) *TransactionService {
	return &TransactionService{
		accounts:     accounts,
		transactions: transactions,
	}
}

// MakeTransaction adds amount to the account balance and records the event.
// Negative amounts are accepted and decrease the balance. The increment is
// atomic in the store; the subsequent record insert is a second write, so a
// store fault between the two leaves the balance applied but unrecorded.
func (s *TransactionService) MakeTransaction(ctx context.Context, accountID int64, amount float64) (*domain.Transaction, error) {
	if accountID == 0 {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}

	if _, err := s.accounts.AddToBalance(ctx, accountID, amount); err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		AccountID: accountID,
		Amount:    amount,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// ListTransactions returns every transaction recorded for the account, in
// insertion order.
func (s *TransactionService) ListTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	if accountID == 0 {
		return nil, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}
	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.transactions.FindByAccountID(ctx, accountID)
}

// IsAvailable reports whether the account's kitty can be spent: at least
// availableMinTransactions recorded transactions and a balance of at least
// availableMinBalance. A missing account is a hard error; failing a
// threshold is a normal false.
func (s *TransactionService) IsAvailable(ctx context.Context, accountID int64) (bool, error) {
	if accountID == 0 {
		return false, fmt.Errorf("%w: account id is required", domain.ErrInvalidInput)
	}
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	count, err := s.transactions.CountByAccountID(ctx, accountID)
	if err != nil {
		return false, err
	}
	return count >= availableMinTransactions && account.Balance >= availableMinBalance, nil
}
