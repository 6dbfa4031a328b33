package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/five82/albumfeed/internal/config"
	"github.com/five82/albumfeed/internal/logging"
	"github.com/five82/albumfeed/internal/prefs"
	"github.com/five82/albumfeed/internal/repository"
	"github.com/five82/albumfeed/internal/resources"
	"github.com/five82/albumfeed/internal/server"
	"github.com/five82/albumfeed/internal/transport"
	"github.com/five82/albumfeed/internal/ui"
)

const (
	shutdownTimeout = 10 * time.Second
	readTimeout     = 15 * time.Second
	writeTimeout    = 30 * time.Second
)

// Options configure the albumfeed application.
type Options struct {
	ConfigPath string // empty uses ~/.config/albumfeed/config.toml
	PrefsPath  string // empty uses ~/.config/albumfeed/prefs.toml
	EnvPath    string // optional .env file
	ListenAddr string // serve only; empty uses the config value
}

// deps is everything the entrypoints share.
type deps struct {
	cfg    config.Config
	logger *slog.Logger
	repo   *repository.Repository
	close  func() error
}

// Run boots the albumfeed TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	d, err := build(opts, true)
	if err != nil {
		return err
	}
	defer func() { _ = d.close() }()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	cat, err := resources.Load(userPrefs.Locale)
	if err != nil {
		return fmt.Errorf("load resources: %w", err)
	}

	d.logger.Info("starting albumfeed",
		slog.String("feed_url", d.cfg.ResolvedFeedURL()),
		slog.String("locale", cat.Locale().String()),
	)

	return ui.Run(ui.Options{
		Context:    ctx,
		Repository: d.repo,
		Catalog:    cat,
		Prefs:      userPrefs,
		PrefsPath:  opts.PrefsPath,
		LogFile:    d.cfg.LogFile,
		Logger:     d.logger.With("component", "ui"),
	})
}

// Serve exposes the repository over HTTP until the context is cancelled.
func Serve(ctx context.Context, opts Options) error {
	d, err := build(opts, false)
	if err != nil {
		return err
	}
	defer func() { _ = d.close() }()

	addr := d.cfg.ListenAddr
	if opts.ListenAddr != "" {
		addr = opts.ListenAddr
	}

	handler := server.NewHandler(d.repo, d.logger.With("component", "server"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	return serve(ctx, srv, d.logger)
}

func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

// build loads configuration and wires the logger, HTTP client and repository.
// The TUI owns the terminal, so its logs go to the configured file.
func build(opts Options, logToFile bool) (deps, error) {
	if err := config.LoadEnvFile(opts.EnvPath); err != nil {
		return deps{}, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return deps{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err = config.ApplyEnv(cfg, os.LookupEnv)
	if err != nil {
		return deps{}, fmt.Errorf("apply environment: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return deps{}, fmt.Errorf("log level: %w", err)
	}

	var (
		w       io.Writer = os.Stderr
		noColor bool
		closer  = func() error { return nil }
	)
	if logToFile {
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return deps{}, err
		}
		w, noColor, closer = f, true, f.Close
	}
	logger := logging.New(logging.Options{
		Writer:  w,
		Level:   level,
		Format:  cfg.LogFormat,
		NoColor: noColor,
	})

	client := transport.NewClient(transport.Options{
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		UserAgent:         cfg.UserAgent,
		Logger:            logger.With("component", "transport"),
	})
	repo := repository.New(client, repository.Options{
		FeedURL: cfg.ResolvedFeedURL(),
		Logger:  logger.With("component", "repository"),
	})

	return deps{cfg: cfg, logger: logger, repo: repo, close: closer}, nil
}
