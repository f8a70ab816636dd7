package telemetry

import (
	"context"
	"sync"

	"github.com/mira/gradekeeper/internal/logger"
)

// Emitter is what callers hold to report events without blocking.
type Emitter interface {
	Emit(action, url string)
}

// Nop discards every event. Used when no analytics endpoint is configured.
type Nop struct{}

func (Nop) Emit(string, string) {}

// Dispatcher queues events onto a single background sender. When the queue
// is full the event is dropped.
type Dispatcher struct {
	messenger Messenger
	events    chan Message
	wg        sync.WaitGroup
	cancel    context.CancelFunc
	log       *logger.Logger
}

func NewDispatcher(m Messenger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Dispatcher{
		messenger: m,
		events:    make(chan Message, queueSize),
		log:       logger.Default().WithPrefix("telemetry"),
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.log.Debug("starting event dispatcher")

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			select {
			case <-ctx.Done():
				d.log.Debug("dispatcher shutting down (context cancelled)")
				return
			case msg, ok := <-d.events:
				if !ok {
					d.log.Debug("dispatcher shutting down (queue closed)")
					return
				}
				if err := d.messenger.Send(ctx, msg); err != nil {
					d.log.Warn("dropping event %q: %v", msg.Args.Action, err)
				}
			}
		}
	}()
}

func (d *Dispatcher) Stop() {
	d.log.Debug("stopping event dispatcher")
	if d.cancel != nil {
		d.cancel()
	}
	close(d.events)
	d.wg.Wait()
	d.log.Debug("event dispatcher stopped")
}

// Emit queues one analytics event. Never blocks; a full queue drops the
// event with a warning.
func (d *Dispatcher) Emit(action, url string) {
	msg := Message{
		Action: "analytics_send",
		Args:   Args{URL: StripQuery(url), Action: action},
	}
	select {
	case d.events <- msg:
	default:
		d.log.Warn("event queue full, dropping event %q", action)
	}
}

var _ Emitter = (*Dispatcher)(nil)
