package inventory

import (
	"context"

	"github.com/jhoicas/storeroom-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del store, pasando
// repositorios atados a esa transacción. Es la garantía de atomicidad del
// motor: actualización de existencia y asiento del libro confirman juntos o
// ninguno, serializados al menos por artículo frente a callers concurrentes.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
	) error) error
}
