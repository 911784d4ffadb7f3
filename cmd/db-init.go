/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	adapterrepo "github.com/eslsoft/setu/internal/adapter/repository"
	"github.com/eslsoft/setu/internal/infrastructure/config"
)

// dbInitCmd creates the accounts table for SQL-backed stores. The file store
// needs no initialization. Note: go-sqlite3 requires CGO_ENABLED=1 builds.
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "Initialize the SQL account store schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		driver, err := cfg.StoreDriver()
		if err != nil {
			return err
		}
		if driver == config.DriverFile {
			cmd.Println("file store needs no schema, nothing to do")
			return nil
		}

		accounts, cleanup, err := openAccountRepository(cfg)
		if err != nil {
			return fmt.Errorf("open account store: %w", err)
		}
		defer cleanup()

		sqlRepo, ok := accounts.(*adapterrepo.SQLAccountRepository)
		if !ok {
			return fmt.Errorf("store driver %s is not SQL backed", driver)
		}
		if err := sqlRepo.InitSchema(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("schema initialized")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
}
