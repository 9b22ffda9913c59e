package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kittybank/backend/internal/kitty/domain"
)

// PostgresAccountRepo implements domain.AccountRepository on gorm/postgres.
type PostgresAccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) *PostgresAccountRepo {
	return &PostgresAccountRepo{db: db}
}

func (r *PostgresAccountRepo) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	var account domain.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *PostgresAccountRepo) FindByName(ctx context.Context, name string) (*domain.Account, error) {
	var account domain.Account
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// Create relies on the unique index on accounts.name: when two creations
// race, the second insert fails with a duplicate-key violation that surfaces
// here as ErrAccountExists.
func (r *PostgresAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAccountExists
		}
		return err
	}
	return nil
}

// AddToBalance increments the balance in the database rather than in Go, so
// concurrent transactions on the same account cannot lose updates.
// SQL: UPDATE accounts SET balance = balance + ? WHERE id = ?
func (r *PostgresAccountRepo) AddToBalance(ctx context.Context, id int64, delta float64) (*domain.Account, error) {
	result := r.db.WithContext(ctx).Model(&domain.Account{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return nil, result.Error
	}
	// No row updated means the account does not exist.
	if result.RowsAffected == 0 {
		return nil, domain.ErrAccountNotFound
	}
	return r.FindByID(ctx, id)
}

// ---------------------------------------------------------

// PostgresTransactionRepo implements domain.TransactionRepository on gorm/postgres.
type PostgresTransactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) *PostgresTransactionRepo {
	return &PostgresTransactionRepo{db: db}
}

func (r *PostgresTransactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *PostgresTransactionRepo) FindByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *PostgresTransactionRepo) CountByAccountID(ctx context.Context, accountID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Transaction{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count, err
}
