package cmd

import (
	"database/sql"
	"fmt"

	// SQL drivers for the account store. The serve path talks to PostgreSQL
	// through pgx; the backup commands use lib/pq, matching their plain
	// database/sql usage.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	adapterrepo "github.com/eslsoft/setu/internal/adapter/repository"
	"github.com/eslsoft/setu/internal/infrastructure/config"
	"github.com/eslsoft/setu/internal/infrastructure/kvstore"
	"github.com/eslsoft/setu/internal/repository"
)

// openAccountRepository builds the configured account store. The returned
// cleanup closes any database handle and is safe to call once.
func openAccountRepository(cfg *config.Config) (repository.AccountRepository, func(), error) {
	return openAccountRepositoryWithDriver(cfg, "pgx")
}

// openBackupAccountRepository is openAccountRepository for the export/import
// commands, which reach PostgreSQL through lib/pq.
func openBackupAccountRepository(cfg *config.Config) (repository.AccountRepository, func(), error) {
	return openAccountRepositoryWithDriver(cfg, "postgres")
}

func openAccountRepositoryWithDriver(cfg *config.Config, pgDriver string) (repository.AccountRepository, func(), error) {
	driver, err := cfg.StoreDriver()
	if err != nil {
		return nil, nil, err
	}

	if driver == config.DriverFile {
		store := kvstore.Open(cfg.Store.Path)
		return adapterrepo.NewFileAccountRepository(store, cfg.Store.Latency), func() {}, nil
	}

	sqlDriver, dsn, err := cfg.SQLDriverAndDSN()
	if err != nil {
		return nil, nil, err
	}
	if sqlDriver == "pgx" {
		sqlDriver = pgDriver
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping %s store: %w", driver, err)
	}
	return adapterrepo.NewSQLAccountRepository(db, sqlDriver), func() { db.Close() }, nil
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}
