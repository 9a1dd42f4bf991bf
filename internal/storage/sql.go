package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restaurantlisting/internal/restaurant"
)

// Dialect — набор запросов под конкретный драйвер.
type Dialect struct {
	Name     string
	listAll  string
	insert   string
	upsert   string
	findByID string
	// после записи с явным id; пусто, если движок сам двигает счётчик
	bumpSeq string
}

var (
	Postgres = Dialect{
		Name:     "postgres",
		listAll:  `SELECT id, name, address, city, description FROM restaurants ORDER BY id`,
		insert:   `INSERT INTO restaurants (name, address, city, description) VALUES ($1, $2, $3, $4) RETURNING id`,
		upsert:   `INSERT INTO restaurants (id, name, address, city, description) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address, city = EXCLUDED.city, description = EXCLUDED.description`,
		findByID: `SELECT id, name, address, city, description FROM restaurants WHERE id = $1`,
		bumpSeq:  `SELECT setval(pg_get_serial_sequence('restaurants', 'id'), GREATEST($1::bigint, (SELECT COALESCE(MAX(id), 1) FROM restaurants)))`,
	}
	SQLite = Dialect{
		Name:     "sqlite",
		listAll:  `SELECT id, name, address, city, description FROM restaurants ORDER BY id`,
		insert:   `INSERT INTO restaurants (name, address, city, description) VALUES (?, ?, ?, ?) RETURNING id`,
		upsert:   `INSERT OR REPLACE INTO restaurants (id, name, address, city, description) VALUES (?, ?, ?, ?, ?)`,
		findByID: `SELECT id, name, address, city, description FROM restaurants WHERE id = ?`,
	}
)

// SQLStore — restaurant.Store поверх database/sql (postgres через pgx или sqlite).
type SQLStore struct {
	DB      *sql.DB
	dialect Dialect
}

func NewSQLStore(db *sql.DB, d Dialect) *SQLStore {
	return &SQLStore{DB: db, dialect: d}
}

func (s *SQLStore) ListAll(ctx context.Context) ([]restaurant.Restaurant, error) {
	rows, err := s.DB.QueryContext(ctx, s.dialect.listAll)
	if err != nil {
		return nil, fmt.Errorf("%s: list: %w", s.dialect.Name, err)
	}
	defer rows.Close()

	out := []restaurant.Restaurant{}
	for rows.Next() {
		var r restaurant.Restaurant
		if err := rows.Scan(&r.ID, &r.Name, &r.Address, &r.City, &r.Description); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", s.dialect.Name, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: list: %w", s.dialect.Name, err)
	}
	return out, nil
}

func (s *SQLStore) Save(ctx context.Context, r restaurant.Restaurant) (restaurant.Restaurant, error) {
	if r.ID != 0 {
		if _, err := s.DB.ExecContext(ctx, s.dialect.upsert, r.ID, r.Name, r.Address, r.City, r.Description); err != nil {
			return restaurant.Restaurant{}, fmt.Errorf("%s: upsert: %w", s.dialect.Name, err)
		}
		if s.dialect.bumpSeq != "" {
			if _, err := s.DB.ExecContext(ctx, s.dialect.bumpSeq, r.ID); err != nil {
				return restaurant.Restaurant{}, fmt.Errorf("%s: bump seq: %w", s.dialect.Name, err)
			}
		}
		return r, nil
	}
	row := s.DB.QueryRowContext(ctx, s.dialect.insert, r.Name, r.Address, r.City, r.Description)
	if err := row.Scan(&r.ID); err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("%s: insert: %w", s.dialect.Name, err)
	}
	return r, nil
}

func (s *SQLStore) FindByID(ctx context.Context, id int64) (restaurant.Restaurant, bool, error) {
	var r restaurant.Restaurant
	err := s.DB.QueryRowContext(ctx, s.dialect.findByID, id).
		Scan(&r.ID, &r.Name, &r.Address, &r.City, &r.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return restaurant.Restaurant{}, false, nil
		}
		return restaurant.Restaurant{}, false, fmt.Errorf("%s: find %d: %w", s.dialect.Name, id, err)
	}
	return r, true, nil
}
