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
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eslsoft/setu/internal/infrastructure/config"
	"github.com/eslsoft/setu/internal/usecase/backup"
)

var importCmd = &cobra.Command{
	Use:   "import <backup-file>",
	Short: "Import accounts from an NDJSON backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		inputPath := args[0]

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		var reader io.Reader
		if inputPath == "-" {
			reader = cmd.InOrStdin()
		} else {
			file, err := os.Open(inputPath)
			if err != nil {
				return fmt.Errorf("open backup file: %w", err)
			}
			defer file.Close()
			reader = file

			if strings.HasSuffix(strings.ToLower(inputPath), ".gz") {
				gz, err := gzip.NewReader(file)
				if err != nil {
					return fmt.Errorf("open gzip stream: %w", err)
				}
				defer gz.Close()
				reader = gz
			}
		}

		accounts, cleanup, err := openBackupAccountRepository(cfg)
		if err != nil {
			return fmt.Errorf("open account store: %w", err)
		}
		defer cleanup()

		stats, err := backup.NewService(accounts).Import(ctx, reader)
		if err != nil {
			return fmt.Errorf("import backup: %w", err)
		}

		cmd.Printf("import complete: %d created, %d updated\n", stats.Created, stats.Updated)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
