package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/kwachira/walletctl/internal/api"
	"github.com/kwachira/walletctl/internal/cli"
	"github.com/kwachira/walletctl/internal/query"
	"github.com/kwachira/walletctl/internal/resource"
	"github.com/kwachira/walletctl/internal/session"
	"github.com/kwachira/walletctl/internal/storage"
)

// app bundles the wired sync layer for one command invocation.
type app struct {
	store    *storage.SQLiteStore
	client   *api.Client
	cache    *query.Cache
	sessions *session.Store
	service  *resource.Service
	notices  *cli.Notices
}

// initApp wires the full stack: session storage, API client, cache, and the
// resource service. Callers must Close when done.
func initApp(ctx context.Context) (*app, error) {
	store, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	notices := cli.NewNotices(nil)
	client, err := api.NewClient(viper.GetString("api.base_url"), store, notices)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	cache := query.NewCache()
	sessions := session.NewStore()
	service := resource.NewService(client, cache, sessions, store, notices)

	return &app{
		store:    store,
		client:   client,
		cache:    cache,
		sessions: sessions,
		service:  service,
		notices:  notices,
	}, nil
}

// Close releases the app's resources.
func (a *app) Close() error {
	return a.store.Close()
}

// initStore opens the session database with migrations applied.
func initStore(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath := expandPath(viper.GetString("database.path"))
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "walletctl", "session.db")
	}

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// expandPath expands a leading ~ and $VAR environment references in a
// configured path.
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}

	return os.ExpandEnv(path)
}
