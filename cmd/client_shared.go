package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eslsoft/setu/internal/entity"
	"github.com/eslsoft/setu/internal/infrastructure/config"
	"github.com/eslsoft/setu/internal/infrastructure/kvstore"
	"github.com/eslsoft/setu/internal/session"
	"github.com/eslsoft/setu/pkg/client"
)

// openSession restores the persisted client session. With no configured path
// the session lives under the user config directory.
func openSession(cfg *config.Config) (*session.Store, error) {
	path := cfg.Client.SessionPath
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve session path: %w", err)
		}
		path = filepath.Join(dir, "setu", "session.json")
	}
	sess := session.NewStore(kvstore.Open(path))
	sess.Restore()
	return sess, nil
}

// newAPIClient builds an API client carrying the session token, if any.
func newAPIClient(cfg *config.Config, sess *session.Store) *client.Client {
	return client.New(cfg.Client.ServerURL, client.WithToken(sess.Token()))
}

// requireSession fails the command when no one is signed in. An empty token
// is the sole authority for "unauthenticated".
func requireSession(sess *session.Store) error {
	if !sess.Authenticated() {
		return fmt.Errorf("not signed in, run \"setu register\" first")
	}
	return nil
}

// sessionUser converts the wire user into the domain view kept in the session.
func sessionUser(u client.User) entity.User {
	return entity.User{
		ID:         u.ID,
		Name:       u.Name,
		SourceLang: entity.ParseLanguage(u.SourceLang),
		TargetLang: entity.ParseLanguage(u.TargetLang),
	}
}
