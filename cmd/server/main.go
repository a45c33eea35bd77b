package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moviegrid/moviegrid/internal/config"
	httpserver "github.com/moviegrid/moviegrid/internal/http"
	"github.com/moviegrid/moviegrid/internal/metrics"
	"github.com/moviegrid/moviegrid/internal/persist"
	"github.com/moviegrid/moviegrid/internal/repository"
	"github.com/moviegrid/moviegrid/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.New(os.Stdout, "[moviegrid] ", log.LstdFlags|log.Lshortfile)

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	storeOpts := store.Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		Logger:                 logger,
	}

	st, err := store.New(dbCtx, cfg.DBURL, storeOpts)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer st.Close()

	if !cfg.SkipMigrateOnBoot {
		if err := st.Migrate(dbCtx); err != nil {
			log.Fatalf("bootstrap schema: %v", err)
		}
	}

	repo := repository.New(st)

	var committer persist.Committer = &persist.RepoCommitter{Repo: repo}
	if cfg.BackendURL != "" {
		committer, err = persist.NewHTTPClient(cfg.BackendURL, time.Duration(cfg.CommitTimeoutSecs)*time.Second, logger)
		if err != nil {
			log.Fatalf("backend client: %v", err)
		}
	}

	m := metrics.New()
	server := httpserver.New(cfg, st, repo, committer, m, logger)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			log.Printf("server error: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("graceful shutdown error: %v", err)
	}
}
