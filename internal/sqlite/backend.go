// Package sqlite implements the SQLite catalog backend. Reference data lives
// in JSONL files inside the data directory; SQLite is rebuilt from them on
// every Attach and serves as the query engine. Objects are never stored.
package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/eav/pkg/types"
)

// dbFileName is the SQLite file created inside the data directory.
const dbFileName = "catalog.db"

var _ types.Catalog = (*Backend)(nil)

// Backend implements types.Catalog on SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *zap.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for attach, detach, and load reporting.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach initializes the backend with the given configuration.
// Creates DataDir and any missing JSONL files, rebuilds the SQLite database,
// and loads the reference data.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return errors.Wrapf(err, "creating data dir %s", dataDir)
	}
	if err := initJSONLFiles(dataDir); err != nil {
		return err
	}

	// The database is derived state; start from scratch every time.
	dbPath := filepath.Join(dataDir, dbFileName)
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing stale %s", dbFileName)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return errors.Wrapf(err, "opening %s", dbPath)
	}
	// PRAGMA foreign_keys is per connection.
	db.SetMaxOpenConns(1)

	if err := b.initDB(db, dataDir); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.config = config
	b.attached = true
	b.logger.Info("catalog attached",
		zap.String("backend", config.Backend),
		zap.String("data_dir", dataDir))
	return nil
}

// initDB creates the schema and loads the JSONL files.
func (b *Backend) initDB(db *sql.DB, dataDir string) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return errors.Wrap(err, "enabling foreign keys")
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return errors.Wrap(err, "creating schema")
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return errors.Wrap(err, "creating index")
		}
	}

	stats, err := loadAllJSONL(db, dataDir)
	if err != nil {
		return errors.Wrap(err, "load JSONL")
	}
	for _, st := range stats {
		b.logger.Debug("reference data loaded",
			zap.String("file", st.file),
			zap.Int("loaded", st.loaded),
			zap.Int("skipped", st.skipped))
		if st.skipped > 0 {
			b.logger.Warn("skipped invalid reference records",
				zap.String("file", st.file),
				zap.Int("skipped", st.skipped))
		}
	}
	return nil
}

// Detach closes the SQLite connection. After Detach, all lookups return
// ErrCatalogDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return errors.Wrap(err, "closing catalog database")
		}
		b.db = nil
	}

	b.attached = false
	b.logger.Info("catalog detached")
	return nil
}

// Config returns the configuration of the current attachment.
func (b *Backend) Config() types.Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config
}
