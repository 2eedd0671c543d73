// Package events implementa el contrato de notificación de cambios: los casos
// de uso publican eventos al confirmar una escritura y la capa de
// reporting/presentación se suscribe, en lugar de sondear estado ajeno.
package events

import (
	"sync"
	"time"
)

// Action qué pasó con la entidad.
type Action string

const (
	ActionCreated  Action = "created"
	ActionUpdated  Action = "updated"
	ActionDeleted  Action = "deleted"
	ActionRecorded Action = "recorded" // asiento de movimiento
)

// Event describe un cambio ya confirmado en el store.
type Event struct {
	Entity string // "item", "category", "unit", "supplier", "employee", "movement"
	Action Action
	ID     string // ID de la entidad afectada
	At     time.Time
}

// Handler recibe eventos. Se invoca de forma síncrona: debe ser rápido y no
// bloquear; el trabajo pesado va en una goroutine del suscriptor.
type Handler func(Event)

// Bus fan-out de eventos en proceso. El valor cero no es usable; construir
// con New. Un *Bus nil es válido como "sin notificaciones": Publish no hace nada.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

// New construye un bus vacío.
func New() *Bus {
	return &Bus{}
}

// Subscribe registra un handler. No hay des-suscripción: los suscriptores
// viven lo que vive el proceso.
func (b *Bus) Subscribe(h Handler) {
	if b == nil || h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish entrega el evento a todos los handlers en orden de suscripción.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	b.mu.RLock()
	handlers := b.handlers
	b.mu.RUnlock()
	for _, h := range handlers {
		h(e)
	}
}
