package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/cagnotte/internal/account"
	accountStore "github.com/MrJamesThe3rd/cagnotte/internal/account/store"
	"github.com/MrJamesThe3rd/cagnotte/internal/attachment"
	"github.com/MrJamesThe3rd/cagnotte/internal/auth"
	"github.com/MrJamesThe3rd/cagnotte/internal/backup"
	backupStore "github.com/MrJamesThe3rd/cagnotte/internal/backup/store"
	"github.com/MrJamesThe3rd/cagnotte/internal/categorize"
	categorizeStore "github.com/MrJamesThe3rd/cagnotte/internal/categorize/store"
	"github.com/MrJamesThe3rd/cagnotte/internal/config"
	"github.com/MrJamesThe3rd/cagnotte/internal/database"
	"github.com/MrJamesThe3rd/cagnotte/internal/envelope"
	envelopeStore "github.com/MrJamesThe3rd/cagnotte/internal/envelope/store"
	"github.com/MrJamesThe3rd/cagnotte/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/cagnotte/internal/expense/store"
	"github.com/MrJamesThe3rd/cagnotte/internal/export"
	cagnotteHttp "github.com/MrJamesThe3rd/cagnotte/internal/http"
	accountHandler "github.com/MrJamesThe3rd/cagnotte/internal/http/account"
	backupHandler "github.com/MrJamesThe3rd/cagnotte/internal/http/backup"
	categoryHandler "github.com/MrJamesThe3rd/cagnotte/internal/http/category"
	envelopeHandler "github.com/MrJamesThe3rd/cagnotte/internal/http/envelope"
	expenseHandler "github.com/MrJamesThe3rd/cagnotte/internal/http/expense"
	exportHandler "github.com/MrJamesThe3rd/cagnotte/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/cagnotte/internal/http/importcsv"
	noteHandler "github.com/MrJamesThe3rd/cagnotte/internal/http/note"
	receiptHandler "github.com/MrJamesThe3rd/cagnotte/internal/http/receipt"
	transferHandler "github.com/MrJamesThe3rd/cagnotte/internal/http/transfer"
	"github.com/MrJamesThe3rd/cagnotte/internal/importer"
	"github.com/MrJamesThe3rd/cagnotte/internal/ledger"
	"github.com/MrJamesThe3rd/cagnotte/internal/note"
	noteStore "github.com/MrJamesThe3rd/cagnotte/internal/note/store"
	"github.com/MrJamesThe3rd/cagnotte/internal/receipt"
	receiptStore "github.com/MrJamesThe3rd/cagnotte/internal/receipt/store"
	"github.com/MrJamesThe3rd/cagnotte/internal/saga"
	"github.com/MrJamesThe3rd/cagnotte/internal/telemetry"
	"github.com/MrJamesThe3rd/cagnotte/internal/transfer"
	transferStore "github.com/MrJamesThe3rd/cagnotte/internal/transfer/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(newLogger(cfg.App.LogFormat, cfg.App.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(cfg.App.Name, cfg.Telemetry.Enabled, os.Stdout)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer shutdownTracing(context.Background())

	if cfg.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET must be set")
	}

	rentAccount, err := regexp.Compile(cfg.Ledger.RentAccountPattern)
	if err != nil {
		return fmt.Errorf("compiling rent account pattern: %w", err)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	files, err := attachment.New(ctx, attachment.Config{
		Endpoint:  cfg.Storage.Endpoint,
		Region:    cfg.Storage.Region,
		Bucket:    cfg.Storage.Bucket,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		URLExpiry: cfg.Storage.URLExpiry,
	})
	if err != nil {
		return fmt.Errorf("configuring attachment storage: %w", err)
	}

	retry := saga.RetryPolicy{MaxAttempts: cfg.Ledger.MaxAttempts, Base: cfg.Ledger.RetryBase}

	var (
		envelopes   = envelopeStore.New(db)
		expenses    = expenseStore.New(db)
		transfers   = transferStore.New(db)
		accountRepo = accountStore.New(db)
	)

	var (
		receiptService    = receipt.NewService(receiptStore.New(db))
		categorizeService = categorize.NewService(categorizeStore.New(db))
		accountService    = account.NewService(accountRepo, receiptService, rentAccount, retry)
		envelopeService   = envelope.NewService(envelopes)
		expenseService    = expense.NewService(expenses, files)
		transferService   = transfer.NewService(transfers)
		ledgerService     = ledger.NewService(envelopes, expenses, transfers, accountService,
			ledger.WithRetryPolicy(retry),
			ledger.WithCategorizer(categorizeService),
			ledger.WithAttachments(expenseService),
		)
		noteService   = note.NewService(noteStore.New(db), ledgerService)
		backupService = backup.NewService(backupStore.New(db))
		exportService = export.NewService(envelopeService, expenseService, transferService, expenseService)
		importService = importer.NewService(ledgerService, categorizeService)
	)

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	router := cagnotteHttp.New(cagnotteHttp.Handlers{
		Envelopes:  envelopeHandler.NewHandler(envelopeService, ledgerService),
		Expenses:   expenseHandler.NewHandler(expenseService, ledgerService),
		Transfers:  transferHandler.NewHandler(transferService, ledgerService),
		Accounts:   accountHandler.NewHandler(accountService),
		Receipts:   receiptHandler.NewHandler(receiptService),
		Notes:      noteHandler.NewHandler(noteService),
		Categories: categoryHandler.NewHandler(categorizeService),
		Backup:     backupHandler.NewHandler(backupService),
		Export:     exportHandler.NewHandler(exportService),
		Import:     importHandler.NewHandler(importService),
	}, cagnotteHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Authenticate:   verifier.Middleware,
		ServiceName:    cfg.App.Name,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      2 * cfg.Server.Timeout,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func newLogger(format, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
