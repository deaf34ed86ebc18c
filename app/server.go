package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelofallars/billed/app/route/newbill"
	"github.com/angelofallars/billed/app/view"
	"github.com/angelofallars/billed/internal/metrics"
	"github.com/angelofallars/billed/internal/session"
	"github.com/angelofallars/billed/internal/store"
)

type App struct {
	host string
	port int

	slog   *slog.Logger
	router chi.Router

	store    store.Store
	renderer *view.Renderer
	signer   *session.Signer
	metrics  *metrics.Metrics
	drafts   *newbill.Registry

	secureCookies  bool
	uploadMaxBytes int64
	filesDir       string
}

// New wires the application around s. A nil store runs the interface
// without data.
func New(slog *slog.Logger, s store.Store, signer *session.Signer, m *metrics.Metrics) *App {
	app := &App{
		host: "localhost",
		port: 3000,

		router: chi.NewRouter(),
		slog:   slog,

		store:    m.Instrument(s),
		renderer: view.MustNew(),
		signer:   signer,
		metrics:  m,
		drafts:   newbill.NewRegistry(time.Hour),

		uploadMaxBytes: 10 << 20,
	}

	return app
}

func (a *App) WithHost(host string) *App {
	a.host = host
	return a
}

func (a *App) WithPort(port uint) *App {
	a.port = int(port)
	return a
}

// WithSecureCookies marks session cookies HTTPS only.
func (a *App) WithSecureCookies(secure bool) *App {
	a.secureCookies = secure
	return a
}

func (a *App) WithUploadMaxBytes(n int64) *App {
	a.uploadMaxBytes = n
	return a
}

func (a *App) WithDraftTTL(ttl time.Duration) *App {
	a.drafts = newbill.NewRegistry(ttl)
	return a
}

// WithFiles serves the files a local store saved from dir.
func (a *App) WithFiles(dir string) *App {
	a.filesDir = dir
	return a
}

// Handler registers the routes and returns the root handler.
func (a *App) Handler() http.Handler {
	a.RegisterRoutes()
	return a.router
}

func (a *App) Serve(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", a.host, a.port)
	server := http.Server{
		Addr:    addr,
		Handler: a.Handler(),

		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.slog.Info("server started listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.slog.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
