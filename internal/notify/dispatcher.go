package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const sendTimeout = 15 * time.Second

// Dispatcher delivers confirmation emails off the request path. Jobs go into a
// bounded queue drained by a single worker; a send failure or a full queue is
// logged and never reaches the registrant.
type Dispatcher struct {
	mailer Mailer
	log    zerolog.Logger
	jobs   chan Message

	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewDispatcher(mailer Mailer, queueSize int, log zerolog.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	d := &Dispatcher{
		mailer: mailer,
		log:    log,
		jobs:   make(chan Message, queueSize),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for msg := range d.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := d.mailer.SendConfirmation(ctx, msg); err != nil {
			d.log.Warn().Err(err).Str("email", msg.ToEmail).Msg("failed to send confirmation email")
		}
		cancel()
	}
}

// Enqueue hands a message to the worker without blocking the caller. When the
// queue is full the message is dropped.
func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.jobs <- msg:
	default:
		d.log.Warn().Str("email", msg.ToEmail).Msg("notification queue full, dropping confirmation email")
	}
}

// Close stops accepting new messages and waits for the worker to drain the
// queue.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.jobs)
	})
	d.wg.Wait()
}
