package domain

import "context"

// AccountRepository is the persistence port for accounts.
// Adapters implement it in the infrastructure layer.
type AccountRepository interface {
	// FindByID returns the account with the given id, or ErrAccountNotFound.
	FindByID(ctx context.Context, id int64) (*Account, error)

	// FindByName returns the account with the given name, or ErrAccountNotFound.
	FindByName(ctx context.Context, name string) (*Account, error)

	// Create inserts a new account and assigns its ID.
	// Name uniqueness is enforced here: a duplicate name fails with
	// ErrAccountExists even when two creations race.
	Create(ctx context.Context, account *Account) error

	// AddToBalance atomically increments the account balance by delta and
	// returns the updated account. Fails with ErrAccountNotFound if the id
	// does not exist. The increment is relative, so concurrent calls on the
	// same account cannot lose updates.
	AddToBalance(ctx context.Context, id int64, delta float64) (*Account, error)
}

// TransactionRepository is the persistence port for transaction records.
type TransactionRepository interface {
	// Create inserts a new transaction record and assigns its ID.
	// Records are never updated or deleted.
	Create(ctx context.Context, tx *Transaction) error

	// FindByAccountID returns all transactions for the account, in insertion order.
	FindByAccountID(ctx context.Context, accountID int64) ([]Transaction, error)

	// CountByAccountID returns the number of transactions recorded for the account.
	CountByAccountID(ctx context.Context, accountID int64) (int64, error)
}
