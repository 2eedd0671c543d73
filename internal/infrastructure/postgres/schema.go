package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema DDL del almacén. Las claves foráneas sin ON DELETE son deliberadas:
// borrar una categoría o unidad con artículos asociados debe fallar (23503);
// la cascada de movimientos al borrar un artículo la ejecuta el caso de uso
// dentro de su propia transacción.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id   UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS units (
		id   UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id           UUID PRIMARY KEY,
		name         TEXT NOT NULL UNIQUE,
		contact_info TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id       UUID PRIMARY KEY,
		name     TEXT NOT NULL UNIQUE,
		position TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT,
		quantity    BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		category_id UUID REFERENCES categories(id),
		unit_id     UUID REFERENCES units(id),
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id          BIGSERIAL PRIMARY KEY,
		item_id     UUID NOT NULL REFERENCES items(id),
		quantity    BIGINT NOT NULL CHECK (quantity <> 0),
		kind        TEXT NOT NULL CHECK (kind IN ('RECEIVE','ISSUE','ADJUSTMENT')),
		occurred_at TIMESTAMPTZ NOT NULL,
		employee_id UUID NOT NULL REFERENCES employees(id),
		supplier_id UUID REFERENCES suppliers(id),
		notes       TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_item ON movements (item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_occurred ON movements (occurred_at DESC, id DESC)`,
}

// Migrate aplica el esquema. Idempotente; se ejecuta en el arranque.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("aplicar esquema: %w", err)
		}
	}
	return nil
}
