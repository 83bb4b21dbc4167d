package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rpggio/slabstock/internal/badger"
	"github.com/rpggio/slabstock/internal/config"
	"github.com/rpggio/slabstock/internal/domain/slab"
	"github.com/rpggio/slabstock/internal/repository"
	"github.com/rpggio/slabstock/internal/sqlite"
)

// OpenStorage opens the key-value backend named by cfg.Driver.
func OpenStorage(cfg config.StorageConfig) (slab.Storage, io.Closer, error) {
	switch cfg.Driver {
	case "sqlite":
		if err := ensureDBDir(cfg.Path); err != nil {
			return nil, nil, fmt.Errorf("prepare database path: %w", err)
		}
		db, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewKVStore(db), db, nil
	case "badger":
		store, err := badger.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case "memory":
		store := repository.NewMemoryStore()
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
