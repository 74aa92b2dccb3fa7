package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type job struct {
	msg    Message
	admins bool
}

// Dispatcher pushes messages through a buffered queue so slow SMTP never
// sits on the request path. Mail is enqueued only after the triggering state
// change has been persisted, which keeps persist-before-notify ordering.
type Dispatcher struct {
	notifier Notifier
	queue    chan job
	log      zerolog.Logger
	wg       sync.WaitGroup
}

func NewDispatcher(notifier Notifier, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		queue:    make(chan job, 100),
		log:      log,
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

		var err error
		if j.admins {
			err = d.notifier.NotifyAdmins(ctx, j.msg)
		} else {
			err = d.notifier.Send(ctx, j.msg)
		}
		cancel()

		if err != nil {
			d.log.Error().Err(err).Str("subject", j.msg.Subject).Msg("notification delivery failed")
		}
	}
}

// Enqueue schedules a customer message. Drops when the queue is full; mail
// must never take the API down.
func (d *Dispatcher) Enqueue(msg Message) {
	d.push(job{msg: msg})
}

// EnqueueAdmin schedules a message to the admin list.
func (d *Dispatcher) EnqueueAdmin(msg Message) {
	d.push(job{msg: msg, admins: true})
}

func (d *Dispatcher) push(j job) {
	select {
	case d.queue <- j:
	default:
		d.log.Warn().Str("subject", j.msg.Subject).Msg("notification queue full, dropping message")
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	close(d.queue)
	d.wg.Wait()
}
