package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/ederv/plandeck/internal/api"
	"github.com/ederv/plandeck/internal/cache"
	"github.com/ederv/plandeck/internal/config"
	"github.com/ederv/plandeck/internal/notify"
	"github.com/ederv/plandeck/internal/store"
)

// App holds the application state and dependencies
type App struct {
	Config   config.Config
	API      *api.Client
	Store    *store.Store
	Cache    *cache.Cache
	Notifier *notify.Notifier
	DataDir  string
	lockFile *flock.Flock
}

// New wires the client together: config, single-instance lock, snapshot
// cache, API client, and store.
func New(cfg config.Config) (*App, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = cache.DefaultDataDir()
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	a := &App{
		Config:   cfg,
		DataDir:  dataDir,
		Notifier: notify.NewNotifier(),
	}

	// One session at a time; the store assumes no concurrent writers
	if err := a.acquireLock(); err != nil {
		return nil, err
	}

	snap, err := cache.Open(filepath.Join(dataDir, "snapshot.db"))
	if err != nil {
		a.releaseLock()
		return nil, fmt.Errorf("failed to open snapshot cache: %w", err)
	}
	a.Cache = snap

	a.API = api.New(cfg.APIBaseURL, cfg.Token, cfg.DevMode)
	a.Store = store.New(a.API)

	// Warm the store from the last synced snapshot so the first frame
	// has data even before the backend responds
	if cached, ok, err := snap.Load(); err == nil && ok {
		a.Store.Seed(cached.Tasks, cached.Projects, cached.Segments)
	}

	return a, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "plandeck.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another instance of plandeck is already running")
	}
	return nil
}

func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// SaveSnapshot writes the store's current collections to the cache
func (a *App) SaveSnapshot() error {
	return a.Cache.Save(cache.Snapshot{
		Tasks:    a.Store.Tasks(),
		Projects: a.Store.Projects(),
		Segments: a.Store.Segments(),
	})
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close snapshot cache: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
