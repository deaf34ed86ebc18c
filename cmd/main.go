package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/api/option"

	"github.com/angelofallars/billed/app"
	"github.com/angelofallars/billed/internal/config"
	"github.com/angelofallars/billed/internal/metrics"
	"github.com/angelofallars/billed/internal/session"
	"github.com/angelofallars/billed/internal/store"
	"github.com/angelofallars/billed/internal/store/firestore"
	"github.com/angelofallars/billed/internal/store/sqlite"
	"github.com/angelofallars/billed/pkg/billedapi"
	"github.com/angelofallars/billed/pkg/logging"
)

func main() {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.Setup(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	s, filesDir, closer, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	log.Info("store selected", "backend", cfg.Store.Backend)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a := app.New(log, s, session.NewSigner(cfg.Session.Secret), metrics.New(reg)).
		WithHost(cfg.HTTP.Host).
		WithPort(uint(cfg.HTTP.Port)).
		WithSecureCookies(!cfg.Development()).
		WithUploadMaxBytes(cfg.Bills.UploadMaxBytes).
		WithDraftTTL(cfg.Bills.DraftTTL).
		WithFiles(filesDir)

	return a.Serve(ctx)
}

// openStore returns the configured store, the directory of locally stored
// files if any, and what to close on shutdown.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, string, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendAPI:
		return billedapi.New(cfg.APIURL, cfg.APITimeout), "", nil, nil

	case config.BackendSQLite:
		s, err := sqlite.New(cfg.SQLitePath, cfg.UploadsDir)
		if err != nil {
			return nil, "", nil, err
		}
		return s, s.UploadsDir(), s, nil

	case config.BackendFirestore:
		var opts []option.ClientOption
		if cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		s, err := firestore.New(ctx, cfg.FirestoreProject, cfg.GCSBucket, opts...)
		if err != nil {
			return nil, "", nil, err
		}
		return s, "", s, nil

	default:
		return nil, "", nil, nil
	}
}
