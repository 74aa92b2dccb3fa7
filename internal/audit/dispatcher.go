// Package audit records admin-side mutations (status changes, catalog
// writes, payment-intent attachments) off the request path.
package audit

import (
	"sync"

	"github.com/rs/zerolog"
)

type Event struct {
	ActorID  *string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Recorder persists one audit entry. *Logger is the production
// implementation.
type Recorder interface {
	Log(actorID *string, action, entity, entityID string, metadata any) error
}

type Dispatcher struct {
	recorder Recorder
	queue    chan Event
	log      zerolog.Logger
	wg       sync.WaitGroup
}

func NewDispatcher(recorder Recorder, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		recorder: recorder,
		queue:    make(chan Event, 100),
		log:      log,
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		if err := d.recorder.Log(ev.ActorID, ev.Action, ev.Entity, ev.EntityID, ev.Metadata); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

// Dispatch enqueues an event. Drops when the queue is full; audit must never
// break the API.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for queued writes to land.
func (d *Dispatcher) Close() {
	close(d.queue)
	d.wg.Wait()
}
