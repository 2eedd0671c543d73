package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/storeroom-api/internal/application/inventory"
	"github.com/jhoicas/storeroom-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta unidades de trabajo atómicas sobre SQLite. Con la conexión
// única del store las transacciones quedan serializadas globalmente, que es
// más fuerte que la serialización por artículo que exige el motor.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el ejecutor de transacciones.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run abre la transacción, entrega repositorios atados a ella y confirma solo
// si fn devuelve nil; cualquier error revierte todo.
func (t *TxRunner) Run(ctx context.Context, fn func(
	items repository.ItemRepository,
	movements repository.MovementRepository,
) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewItemRepository(tx), NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
