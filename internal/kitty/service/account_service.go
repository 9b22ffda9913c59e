package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kittybank/backend/internal/kitty/domain"
)

// AccountService creates and resolves accounts, enforcing name validity
// and uniqueness. It holds no state between calls.
type AccountService struct {
	accounts domain.AccountRepository
}

func NewAccountService(accounts domain.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

// validateName rejects names that are blank after trimming or contain the
// separator character ','.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" || strings.Contains(name, ",") {
		return fmt.Errorf("%w: account name cannot be blank or contain ','", domain.ErrInvalidInput)
	}
	return nil
}

// CreateAccount persists a new account with the given name and starting
// balance. The name lookup is a fast-path duplicate check; the store's
// uniqueness guarantee is the authoritative guard when creations race.
func (s *AccountService) CreateAccount(ctx context.Context, name string, initialBalance float64) (*domain.Account, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if _, err := s.accounts.FindByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrAccountExists, name)
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	account := &domain.Account{
		Name:    name,
		Balance: initialBalance,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			return nil, fmt.Errorf("%w: %q", domain.ErrAccountExists, name)
		}
		return nil, err
	}
	return account, nil
}

// GetAccount resolves an account by id first, falling back to a name lookup
// when the id is absent (zero) or matches nothing. At least one identifier
// must be supplied; when only a name is given it must be a valid name.
func (s *AccountService) GetAccount(ctx context.Context, id int64, name string) (*domain.Account, error) {
	if id == 0 {
		if name == "" {
			return nil, fmt.Errorf("%w: either id or name is required", domain.ErrInvalidInput)
		}
		if err := validateName(name); err != nil {
			return nil, err
		}
	}

	if id != 0 {
		account, err := s.accounts.FindByID(ctx, id)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
	}
	if name != "" {
		account, err := s.accounts.FindByName(ctx, name)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: id=%d name=%q", domain.ErrAccountNotFound, id, name)
}
