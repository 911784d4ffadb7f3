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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	adapterrepo "github.com/eslsoft/setu/internal/adapter/repository"
	"github.com/eslsoft/setu/internal/adapter/rest"
	"github.com/eslsoft/setu/internal/infrastructure/config"
	"github.com/eslsoft/setu/internal/infrastructure/server"
	"github.com/eslsoft/setu/internal/usecase"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load config
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// Logger
		logger, err := server.NewLogger(cfg)
		if err != nil {
			return err
		}

		// Account store
		accounts, cleanup, err := openAccountRepository(cfg)
		if err != nil {
			return fmt.Errorf("open account store: %w", err)
		}
		defer cleanup()

		// Lesson catalog: built-in seed plus optional extra file
		extra, err := adapterrepo.LoadCatalogFile(cfg.Catalog.Path)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		lessons, err := adapterrepo.NewSeedLessonRepository(extra...)
		if err != nil {
			return fmt.Errorf("build catalog: %w", err)
		}
		if len(extra) > 0 {
			logger.Infof("loaded %d extra lessons from %s", len(extra), cfg.Catalog.Path)
		}

		// Usecases and REST services
		accountUC := usecase.NewAccountUsecase(accounts, lessons)
		lessonUC := usecase.NewLessonUsecase(lessons)
		progressUC := usecase.NewProgressUsecase(accounts)

		handler := rest.Router(
			rest.NewAccountService(accountUC, logger),
			rest.NewLessonService(lessonUC, logger),
			rest.NewProgressService(progressUC, logger),
			logger,
		)
		srv := server.NewServer(cfg, logger, handler)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		// Graceful shutdown
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			logger.Infof("received signal: %s, shutting down", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
			return nil
		case err := <-errCh:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
