package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"fpath-go/internal/catalog"
	"fpath-go/internal/config"
	"fpath-go/internal/database"
	"fpath-go/internal/database/migrations"
	"fpath-go/internal/fpath"
	"fpath-go/internal/fs"
)

// App is the application layer between the CLI and the catalog service.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw string paths, and manages the store lifecycle on Close.
type App struct {
	cfg      *config.Config
	style    fpath.Style
	store    *database.SQLiteStore
	resolver catalog.Resolver
	service  *catalog.Service
	clock    catalog.Clock
	op       *Operation
	logger   *slog.Logger
	logFile  *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "AddRoot", "Locate").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation, parameters string, verbose bool) (*App, error) {
	st, err := cfg.Path.ParseStyle()
	if err != nil {
		return nil, fmt.Errorf("reading path style: %w", err)
	}
	fpath.SetDefaultStyle(st)

	store, err := database.NewStoreFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	if err := store.CheckMigrations(); err != nil {
		store.Close()
		return nil, fmt.Errorf("catalog schema out of date (run `fpath db migrate`): %w", err)
	}

	patterns := append([]string{}, cfg.Catalog.Ignore...)
	if cfg.BaseDir != "" {
		extra, err := fs.ParseIgnoreFile(filepath.Join(cfg.BaseDir, fs.IgnoreFileName))
		if err != nil {
			store.Close()
			return nil, err
		}
		patterns = append(patterns, extra...)
	}

	clock := catalog.RealClock{}
	ids := catalog.UUIDGenerator{}
	op := NewOperation(ids.New(), operation, parameters, clock.Now())

	logger, logFile, err := newLogger(cfg.LogDir, op.ID, verbose)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger.Debug("operation started", "operation", op.Name, "parameters", op.Parameters, "style", st.String())

	svc := catalog.NewService(store, fs.NewIgnoreMatcher(patterns), &slogAdapter{l: logger}, clock, ids)

	return &App{
		cfg:      cfg,
		style:    st,
		store:    store,
		resolver: fs.NewOSResolver(st),
		service:  svc,
		clock:    clock,
		op:       op,
		logger:   logger,
		logFile:  logFile,
	}, nil
}

// Style returns the configured path style.
func (a *App) Style() fpath.Style { return a.style }

// Operation returns the record of the running command.
func (a *App) Operation() *Operation { return a.op }

// AddRoot resolves the given path and starts tracking it.
func (a *App) AddRoot(rawPath string) (*catalog.TrackResult, error) {
	p, err := a.resolve(rawPath)
	if err != nil {
		return nil, err
	}
	res, err := a.service.Track(p)
	a.op.Fail(err)
	return res, err
}

// RemoveRoot resolves the given path and stops tracking it.
func (a *App) RemoveRoot(rawPath string) (*catalog.Root, error) {
	p, err := a.resolve(rawPath)
	if err != nil {
		return nil, err
	}
	r, err := a.service.Untrack(p)
	a.op.Fail(err)
	return r, err
}

// Roots returns every tracked root.
func (a *App) Roots() ([]*catalog.Root, error) {
	roots, err := a.service.Roots()
	a.op.Fail(err)
	return roots, err
}

// Locate resolves the given path and finds the tracked root containing it.
func (a *App) Locate(rawPath string) (*catalog.Location, error) {
	p, err := a.resolve(rawPath)
	if err != nil {
		return nil, err
	}
	loc, err := a.service.Locate(p)
	a.op.Fail(err)
	return loc, err
}

func (a *App) resolve(rawPath string) (fpath.Path, error) {
	p, err := a.resolver.Resolve(rawPath)
	if err != nil {
		a.op.Fail(err)
		return fpath.Path{}, fmt.Errorf("resolving path: %w", err)
	}
	return p, nil
}

// Close logs the outcome of the operation and closes all resources.
func (a *App) Close() error {
	var merr *multierror.Error

	a.logger.Info("operation finished",
		"operation", a.op.Name,
		"status", a.op.Status,
		"elapsed", a.op.Elapsed(a.clock.Now()))

	if err := a.store.Close(); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("closing catalog: %w", err))
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("closing log file: %w", err))
		}
	}
	return merr.ErrorOrNil()
}

// MigrateDatabase applies pending schema migrations to the configured catalog.
func MigrateDatabase(cfg *config.Config) (migrations.Status, error) {
	store, err := database.NewStoreFromConfig(cfg.Database)
	if err != nil {
		return migrations.Status{}, fmt.Errorf("opening catalog: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		return migrations.Status{}, err
	}
	return store.Status()
}

// DatabaseStatus reports the schema version of the configured catalog.
func DatabaseStatus(cfg *config.Config) (migrations.Status, error) {
	store, err := database.NewStoreFromConfig(cfg.Database)
	if err != nil {
		return migrations.Status{}, fmt.Errorf("opening catalog: %w", err)
	}
	defer store.Close()
	return store.Status()
}

// DatabaseSchema returns the catalog schema built by the embedded migrations.
// It migrates a scratch in-memory database and leaves the real one alone.
func DatabaseSchema() (string, error) {
	store, err := database.NewStoreFromConfig(config.DatabaseConfig{Type: "memory"})
	if err != nil {
		return "", err
	}
	defer store.Close()
	return store.Schema()
}

// BackupDatabase writes a snapshot of the configured catalog to dest.
// dest must not exist yet.
func BackupDatabase(cfg *config.Config, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("backup destination already exists: %s", dest)
	}

	store, err := database.NewStoreFromConfig(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}

	var merr *multierror.Error
	if err := store.CheckMigrations(); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("catalog schema out of date: %w", err))
	} else if err := store.BackupTo(dest); err != nil {
		merr = multierror.Append(merr, err)
	}
	if err := store.Close(); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("closing catalog: %w", err))
	}
	return merr.ErrorOrNil()
}
