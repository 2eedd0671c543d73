package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// schema DDL del almacén para SQLite. Mismo modelo que el esquema de
// PostgreSQL: claves foráneas sin ON DELETE para que borrar una categoría o
// unidad con artículos falle, y la cascada de movimientos la haga el caso de
// uso en su transacción.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS units (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL UNIQUE,
		contact_info TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL UNIQUE,
		position TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT,
		quantity    INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		category_id TEXT REFERENCES categories(id),
		unit_id     TEXT REFERENCES units(id),
		created_at  TIMESTAMP NOT NULL,
		updated_at  TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		item_id     TEXT NOT NULL REFERENCES items(id),
		quantity    INTEGER NOT NULL CHECK (quantity <> 0),
		kind        TEXT NOT NULL CHECK (kind IN ('RECEIVE','ISSUE','ADJUSTMENT')),
		occurred_at TIMESTAMP NOT NULL,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		supplier_id TEXT REFERENCES suppliers(id),
		notes       TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_item ON movements (item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_occurred ON movements (occurred_at DESC, id DESC)`,
}

// Open abre (o crea) la base embebida y aplica el esquema. La conexión única
// serializa todas las transacciones: en SQLite no hay bloqueo por fila, así
// que la serialización por artículo se obtiene serializando todo el store.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("aplicar esquema: %w", err)
		}
	}
	return db, nil
}
