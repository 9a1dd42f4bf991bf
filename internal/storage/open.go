package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"restaurantlisting/internal/pg"
	"restaurantlisting/internal/restaurant"
	"restaurantlisting/internal/sqlite"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverEtcd     = "etcd"
)

// Options — параметры выбора и подключения хранилища.
type Options struct {
	Driver        string
	DBURL         string
	SQLitePath    string
	EtcdEndpoints []string
	AutoMigrate   bool
}

// Open создаёт Store по Options.Driver. Возвращённый close нужно вызвать при остановке.
func Open(ctx context.Context, opts Options, log *slog.Logger) (restaurant.Store, func() error, error) {
	noop := func() error { return nil }

	switch opts.Driver {
	case "", DriverMemory:
		return NewMemoryStore(), noop, nil

	case DriverPostgres:
		db, err := pg.Open(ctx, opts.DBURL)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres open: %w", err)
		}
		if opts.AutoMigrate {
			if err := pg.Migrate(ctx, db, log); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		return NewSQLStore(db, Postgres), db.Close, nil

	case DriverSQLite:
		if err := ensureDir(opts.SQLitePath); err != nil {
			return nil, nil, err
		}
		db, err := sqlite.Open(opts.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite open %s: %w", opts.SQLitePath, err)
		}
		return NewSQLStore(db, SQLite), db.Close, nil

	case DriverEtcd:
		s, err := NewEtcdStore(opts.EtcdEndpoints)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}

// Migrate применяет схему для SQL-драйверов. Для memory/etcd ничего не делает.
func Migrate(ctx context.Context, opts Options, log *slog.Logger) error {
	switch opts.Driver {
	case DriverPostgres:
		db, err := pg.Open(ctx, opts.DBURL)
		if err != nil {
			return fmt.Errorf("postgres open: %w", err)
		}
		defer db.Close()
		return pg.Migrate(ctx, db, log)
	case DriverSQLite:
		if err := ensureDir(opts.SQLitePath); err != nil {
			return err
		}
		db, err := sqlite.Open(opts.SQLitePath) // Open сам применяет схему
		if err != nil {
			return err
		}
		return db.Close()
	default:
		log.Info("migrate.skipped", "driver", opts.Driver)
		return nil
	}
}

func ensureDir(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create db dir %s: %w", dir, err)
	}
	return nil
}
