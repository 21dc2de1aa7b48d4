package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/timetable/internal/catalog"
	"github.com/javiermolinar/timetable/internal/config"
	"github.com/javiermolinar/timetable/internal/db"
	"github.com/javiermolinar/timetable/internal/store"
)

// OpenRepository opens the SQLite database at dbPath, creating its directory.
func OpenRepository(dbPath string) (store.Repository, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}

// loadCatalog returns the built-in lectures merged with the configured file.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("loading lecture catalog: %w", err)
	}
	return cat, nil
}
