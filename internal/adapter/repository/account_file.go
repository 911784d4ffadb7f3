package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/infrastructure/kvstore"
	"github.com/eslsoft/setu/internal/repository"
)

// accountsKey is the single logical key holding the serialized account list.
// The whole directory lives in one entry; it is small enough to rewrite on
// every change.
const accountsKey = "accounts"

// FileAccountRepository keeps the account directory as one JSON document in a
// kvstore file. Each call performs its read-modify-write as a single step
// under the store lock. An optional artificial latency mimics a remote
// backend; the delay honours context cancellation but never retries.
type FileAccountRepository struct {
	store   *kvstore.Store
	latency time.Duration
}

var _ repository.AccountRepository = (*FileAccountRepository)(nil)

// NewFileAccountRepository builds the file-backed repository. latency <= 0
// disables the simulated delay.
func NewFileAccountRepository(store *kvstore.Store, latency time.Duration) *FileAccountRepository {
	return &FileAccountRepository{store: store, latency: latency}
}

func (r *FileAccountRepository) Create(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	if err := r.simulateLatency(ctx); err != nil {
		return nil, err
	}

	err := r.store.Update(accountsKey, func(raw json.RawMessage) (any, error) {
		accounts, err := decodeAccounts(raw)
		if err != nil {
			return nil, err
		}
		return append(accounts, *account), nil
	})
	if err != nil {
		return nil, err
	}
	saved := *account
	return &saved, nil
}

func (r *FileAccountRepository) FindByToken(ctx context.Context, token string) (*entity.Account, error) {
	if err := r.simulateLatency(ctx); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, entity.ErrAccountNotFound
	}

	accounts, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].ID == token {
			found := accounts[i]
			return &found, nil
		}
	}
	return nil, entity.ErrAccountNotFound
}

func (r *FileAccountRepository) Update(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	if err := r.simulateLatency(ctx); err != nil {
		return nil, err
	}

	err := r.store.Update(accountsKey, func(raw json.RawMessage) (any, error) {
		accounts, err := decodeAccounts(raw)
		if err != nil {
			return nil, err
		}
		for i := range accounts {
			if accounts[i].ID == account.ID {
				accounts[i] = *account
				return accounts, nil
			}
		}
		return nil, entity.ErrAccountNotFound
	})
	if err != nil {
		return nil, err
	}
	saved := *account
	return &saved, nil
}

func (r *FileAccountRepository) List(ctx context.Context) ([]entity.Account, error) {
	if err := r.simulateLatency(ctx); err != nil {
		return nil, err
	}
	return r.readAll()
}

// readAll loads the serialized account list; a missing key reads as empty.
func (r *FileAccountRepository) readAll() ([]entity.Account, error) {
	var accounts []entity.Account
	if _, err := r.store.Get(accountsKey, &accounts); err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []entity.Account{}
	}
	return accounts, nil
}

// decodeAccounts parses the raw list inside an Update step; an absent key
// decodes as empty.
func decodeAccounts(raw json.RawMessage) ([]entity.Account, error) {
	accounts := []entity.Account{}
	if len(raw) == 0 {
		return accounts, nil
	}
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return accounts, nil
}

// simulateLatency defers completion without introducing concurrency: the
// caller blocks for the configured delay or until its context is done.
func (r *FileAccountRepository) simulateLatency(ctx context.Context) error {
	if r.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(r.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
