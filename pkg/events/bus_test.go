package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/storeroom-api/pkg/events"
)

func TestBus_PublishEntregaEnOrden(t *testing.T) {
	bus := events.New()

	var got []string
	bus.Subscribe(func(e events.Event) { got = append(got, "a:"+e.ID) })
	bus.Subscribe(func(e events.Event) { got = append(got, "b:"+e.ID) })

	bus.Publish(events.Event{Entity: "item", Action: events.ActionCreated, ID: "1"})
	bus.Publish(events.Event{Entity: "item", Action: events.ActionDeleted, ID: "2"})

	assert.Equal(t, []string{"a:1", "b:1", "a:2", "b:2"}, got)
}

func TestBus_PublishRellenaAt(t *testing.T) {
	bus := events.New()

	var got events.Event
	bus.Subscribe(func(e events.Event) { got = e })
	bus.Publish(events.Event{Entity: "movement", Action: events.ActionRecorded, ID: "7"})

	assert.False(t, got.At.IsZero(), "Publish debe sellar At si viene vacío")
}

func TestBus_NilEsSilencioso(t *testing.T) {
	// Un *Bus nil significa "sin notificaciones": nada debe entrar en pánico.
	var bus *events.Bus
	assert.NotPanics(t, func() {
		bus.Subscribe(func(events.Event) {})
		bus.Publish(events.Event{Entity: "item", ID: "1"})
	})
}

func TestBus_SubscribeNilHandler(t *testing.T) {
	bus := events.New()
	assert.NotPanics(t, func() {
		bus.Subscribe(nil)
		bus.Publish(events.Event{Entity: "item", ID: "1"})
	})
}
