package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store opens the sqlite database and exposes one repository per aggregate,
// all sharing the same connection pool. The memory repositories remain the
// default; this store is selected when a DSN is configured.
type Store struct {
	db *sql.DB
}

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			price INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sellers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			neighborhood TEXT NOT NULL,
			phone TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL UNIQUE,
			actor_id TEXT NOT NULL DEFAULT '',
			seq INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS assignments (
			id TEXT PRIMARY KEY,
			seller_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (seller_id) REFERENCES sellers(id),
			FOREIGN KEY (product_id) REFERENCES products(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assignments_seller ON assignments(seller_id, seq)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Products() *ProductRepository {
	return &ProductRepository{db: s.db}
}

func (s *Store) Sellers() *SellerRepository {
	return &SellerRepository{db: s.db}
}

func (s *Store) Assignments() *AssignmentRepository {
	return &AssignmentRepository{db: s.db}
}

// nextSeq allocates the next insertion-order sequence number for a table.
// ListAll contracts promise insertion order, which rowid alone does not
// guarantee after vacuum.
func nextSeq(db *sql.DB, table string) (int64, error) {
	var seq sql.NullInt64
	if err := db.QueryRow("SELECT MAX(seq) FROM " + table).Scan(&seq); err != nil {
		return 0, err
	}
	return seq.Int64 + 1, nil
}
