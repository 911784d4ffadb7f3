package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/repository"
)

// Schema creates the accounts table. Progress is stored as a JSON document in
// a text column: the records are only ever read and written as a whole, like
// the rest of the account.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	contact     TEXT NOT NULL DEFAULT '',
	source_lang TEXT NOT NULL DEFAULT '',
	target_lang TEXT NOT NULL DEFAULT '',
	progress    TEXT NOT NULL DEFAULT '[]',
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);
`

// SQLAccountRepository persists accounts through database/sql. It works
// against SQLite (driver sqlite3) and PostgreSQL (driver pgx); queries are
// written with ? placeholders and rewritten for PostgreSQL.
type SQLAccountRepository struct {
	db       *sql.DB
	postgres bool
}

var _ repository.AccountRepository = (*SQLAccountRepository)(nil)

// NewSQLAccountRepository wraps an open database handle. driver is the
// database/sql driver name the handle was opened with.
func NewSQLAccountRepository(db *sql.DB, driver string) *SQLAccountRepository {
	return &SQLAccountRepository{
		db:       db,
		postgres: driver == "pgx" || driver == "postgres",
	}
}

// InitSchema creates the accounts table when it does not exist yet.
func (r *SQLAccountRepository) InitSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create accounts table: %w", err)
	}
	return nil
}

func (r *SQLAccountRepository) Create(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	progress, err := json.Marshal(account.Progress)
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}

	query := r.rebind(`INSERT INTO accounts (id, name, contact, source_lang, target_lang, progress, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = r.db.ExecContext(ctx, query,
		account.ID, account.Name, account.Contact,
		account.SourceLang.Code(), account.TargetLang.Code(),
		string(progress), account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}
	saved := *account
	return &saved, nil
}

func (r *SQLAccountRepository) FindByToken(ctx context.Context, token string) (*entity.Account, error) {
	if token == "" {
		return nil, entity.ErrAccountNotFound
	}
	query := r.rebind(`SELECT id, name, contact, source_lang, target_lang, progress, created_at, updated_at
		FROM accounts WHERE id = ?`)
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, token))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrAccountNotFound
	}
	return account, err
}

func (r *SQLAccountRepository) Update(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	progress, err := json.Marshal(account.Progress)
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}

	query := r.rebind(`UPDATE accounts
		SET name = ?, contact = ?, source_lang = ?, target_lang = ?, progress = ?, updated_at = ?
		WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query,
		account.Name, account.Contact,
		account.SourceLang.Code(), account.TargetLang.Code(),
		string(progress), account.UpdatedAt, account.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, entity.ErrAccountNotFound
	}
	saved := *account
	return &saved, nil
}

func (r *SQLAccountRepository) List(ctx context.Context) ([]entity.Account, error) {
	query := `SELECT id, name, contact, source_lang, target_lang, progress, created_at, updated_at
		FROM accounts ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []entity.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*entity.Account, error) {
	var (
		account      entity.Account
		source       string
		target       string
		progressJSON string
	)
	err := row.Scan(
		&account.ID, &account.Name, &account.Contact,
		&source, &target, &progressJSON,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	account.SourceLang = entity.Language(source)
	account.TargetLang = entity.Language(target)
	if err := json.Unmarshal([]byte(progressJSON), &account.Progress); err != nil {
		return nil, fmt.Errorf("decode progress for account %s: %w", account.ID, err)
	}
	if account.Progress == nil {
		account.Progress = []entity.ProgressRecord{}
	}
	return &account, nil
}

// rebind converts ? placeholders to the $n form PostgreSQL expects.
func (r *SQLAccountRepository) rebind(query string) string {
	if !r.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}
