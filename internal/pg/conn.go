package pg

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
)

func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate создаёт таблицу ресторанов, если её нет.
func Migrate(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	ddl, err := GenerateDDL([]Table{RestaurantTable()})
	if err != nil {
		return err
	}
	return ApplyDDL(ctx, db, ddl, log)
}
