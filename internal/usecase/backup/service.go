// Package backup exports and imports the account directory as NDJSON: one
// header line followed by one account per line. The format is append-friendly
// and diffable, which is all a store this size needs.
package backup

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/repository"
)

const formatVersion = 1

// ErrBadFormat reports an unreadable or incompatible backup stream.
var ErrBadFormat = errors.New("backup: unrecognized format")

// Header is the first NDJSON line of a backup stream.
type Header struct {
	FormatVersion int       `json:"format_version"`
	ExportedAt    time.Time `json:"exported_at"`
	Accounts      int       `json:"accounts"`
}

// ImportStats summarises what an import changed.
type ImportStats struct {
	Created int
	Updated int
}

// Service moves accounts between the repository and NDJSON streams.
type Service struct {
	accounts repository.AccountRepository
	clock    func() time.Time
}

// NewService binds the service to an account repository.
func NewService(accounts repository.AccountRepository) *Service {
	return &Service{accounts: accounts, clock: time.Now}
}

// Export writes every account to w and returns how many were written.
func (s *Service) Export(ctx context.Context, w io.Writer) (int, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list accounts: %w", err)
	}

	enc := json.NewEncoder(w)
	header := Header{
		FormatVersion: formatVersion,
		ExportedAt:    s.clock().UTC(),
		Accounts:      len(accounts),
	}
	if err := enc.Encode(header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	for i := range accounts {
		if err := enc.Encode(accounts[i]); err != nil {
			return i, fmt.Errorf("write account %s: %w", accounts[i].ID, err)
		}
	}
	return len(accounts), nil
}

// Import reads a backup stream and upserts every account it contains:
// existing ids are overwritten, unknown ids are created.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportStats, error) {
	var stats ImportStats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return stats, err
		}
		return stats, fmt.Errorf("%w: empty stream", ErrBadFormat)
	}
	var header Header
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
		return stats, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if header.FormatVersion != formatVersion {
		return stats, fmt.Errorf("%w: version %d not supported", ErrBadFormat, header.FormatVersion)
	}

	line := 1
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var account entity.Account
		if err := json.Unmarshal(scanner.Bytes(), &account); err != nil {
			return stats, fmt.Errorf("%w: line %d: %v", ErrBadFormat, line, err)
		}
		if account.ID == "" {
			return stats, fmt.Errorf("%w: line %d: account without id", ErrBadFormat, line)
		}
		account.Normalize(s.clock())

		created, err := s.upsert(ctx, &account)
		if err != nil {
			return stats, fmt.Errorf("store account %s: %w", account.ID, err)
		}
		if created {
			stats.Created++
		} else {
			stats.Updated++
		}
	}
	return stats, scanner.Err()
}

func (s *Service) upsert(ctx context.Context, account *entity.Account) (bool, error) {
	_, err := s.accounts.FindByToken(ctx, account.ID)
	switch {
	case errors.Is(err, entity.ErrAccountNotFound):
		_, err = s.accounts.Create(ctx, account)
		return true, err
	case err != nil:
		return false, err
	default:
		_, err = s.accounts.Update(ctx, account)
		return false, err
	}
}
