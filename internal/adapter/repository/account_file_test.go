package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/infrastructure/kvstore"
)

func newFileRepo(t *testing.T, path string) *FileAccountRepository {
	t.Helper()
	return NewFileAccountRepository(kvstore.Open(path), 0)
}

func testAccount(id string) *entity.Account {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &entity.Account{
		ID:         id,
		Name:       "Asha",
		Contact:    "asha@example.com",
		SourceLang: entity.LanguageHindi,
		TargetLang: entity.LanguageKannada,
		Progress:   []entity.ProgressRecord{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestFileRepo_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := newFileRepo(t, filepath.Join(t.TempDir(), "accounts.json"))

	if _, err := repo.Create(ctx, testAccount("a1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := repo.FindByToken(ctx, "a1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Name != "Asha" || found.SourceLang != entity.LanguageHindi {
		t.Fatalf("unexpected account: %+v", found)
	}

	if _, err := repo.FindByToken(ctx, "missing"); !errors.Is(err, entity.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if _, err := repo.FindByToken(ctx, ""); !errors.Is(err, entity.ErrAccountNotFound) {
		t.Fatalf("empty token should not match, got %v", err)
	}
}

func TestFileRepo_UpdatePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "accounts.json")

	repo := newFileRepo(t, path)
	account, err := repo.Create(ctx, testAccount("a1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	account.RecordProgress("665f3a9e1e9b4d3e8c9c7f02", 100)
	if _, err := repo.Update(ctx, account); err != nil {
		t.Fatalf("update: %v", err)
	}

	// A fresh repository over the same file must see the write.
	reopened := newFileRepo(t, path)
	found, err := reopened.FindByToken(ctx, "a1")
	if err != nil {
		t.Fatalf("find after reopen: %v", err)
	}
	if len(found.Progress) != 1 || found.Progress[0].Score != 100 {
		t.Fatalf("unexpected progress: %+v", found.Progress)
	}
}

func TestFileRepo_UpdateUnknown(t *testing.T) {
	repo := newFileRepo(t, filepath.Join(t.TempDir(), "accounts.json"))
	if _, err := repo.Update(context.Background(), testAccount("ghost")); !errors.Is(err, entity.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestFileRepo_ListEmpty(t *testing.T) {
	repo := newFileRepo(t, filepath.Join(t.TempDir(), "accounts.json"))
	accounts, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if accounts == nil || len(accounts) != 0 {
		t.Fatalf("expected empty slice, got %v", accounts)
	}
}

func TestFileRepo_ConcurrentCreatesLoseNothing(t *testing.T) {
	ctx := context.Background()
	repo := newFileRepo(t, filepath.Join(t.TempDir(), "accounts.json"))

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, testAccount(fmt.Sprintf("a%d", i)))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	accounts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(accounts) != workers {
		t.Fatalf("created %d accounts but only %d survived", workers, len(accounts))
	}
}

func TestFileRepo_ConcurrentUpdatesLoseNothing(t *testing.T) {
	ctx := context.Background()
	repo := newFileRepo(t, filepath.Join(t.TempDir(), "accounts.json"))

	const workers = 10
	for i := 0; i < workers; i++ {
		if _, err := repo.Create(ctx, testAccount(fmt.Sprintf("a%d", i))); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			account := testAccount(fmt.Sprintf("a%d", i))
			account.RecordProgress("665f3a9e1e9b4d3e8c9c7f02", 100)
			_, err := repo.Update(ctx, account)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("update: %v", err)
		}
	}

	accounts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, account := range accounts {
		if len(account.Progress) != 1 {
			t.Fatalf("account %s lost its progress update: %+v", account.ID, account.Progress)
		}
	}
}

func TestFileRepo_LatencyHonoursContext(t *testing.T) {
	repo := NewFileAccountRepository(kvstore.Open(filepath.Join(t.TempDir(), "accounts.json")), time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := repo.FindByToken(ctx, "a1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRebind(t *testing.T) {
	sqlite := NewSQLAccountRepository(nil, "sqlite3")
	if got := sqlite.rebind("SELECT * FROM accounts WHERE id = ?"); got != "SELECT * FROM accounts WHERE id = ?" {
		t.Fatalf("sqlite queries must keep ? placeholders, got %q", got)
	}

	pg := NewSQLAccountRepository(nil, "pgx")
	got := pg.rebind("UPDATE accounts SET name = ?, progress = ? WHERE id = ?")
	want := "UPDATE accounts SET name = $1, progress = $2 WHERE id = $3"
	if got != want {
		t.Fatalf("rebind mismatch:\n got %q\nwant %q", got, want)
	}
}
