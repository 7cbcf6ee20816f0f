// Package sqlite provides the public API for the SQLite catalog backend.
// This package exposes the factory function while keeping implementation
// details internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/eav/internal/sqlite"
	"github.com/mesh-intelligence/eav/pkg/types"
)

// NewBackend creates a new SQLite catalog backend.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	catalog := sqlite.NewBackend(nil)
//	err := catalog.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".eav-catalog",
//	})
//	defer catalog.Detach()
func NewBackend(logger *zap.Logger) types.Catalog {
	return sqlite.NewBackend(sqlite.WithLogger(logger))
}
