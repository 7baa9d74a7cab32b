// Package publisher hands audit events to their sinks without making the
// request wait on them.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	audit "registrar/pkg/platform/audit"
	"registrar/pkg/platform/audit/worker"
)

// ErrBufferFull is returned when the async buffer cannot take another event.
var ErrBufferFull = errors.New("audit buffer full")

// DropCounter counts events discarded because the buffer was full.
type DropCounter interface {
	IncrementAuditDropped()
}

type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	drops   DropCounter
	buffer  int
	queue   chan audit.Event
	wg      sync.WaitGroup
	closeMu sync.RWMutex
	closed  bool
}

type Option func(*Publisher)

// WithAsyncBuffer makes Emit enqueue onto a channel of size n drained by a
// background worker. Without it Emit appends synchronously.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) { p.buffer = n }
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

func WithDropCounter(c DropCounter) Option {
	return func(p *Publisher) { p.drops = c }
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer > 0 {
		p.queue = make(chan audit.Event, p.buffer)
		w := worker.NewWorker(store, p.queue, p.logger)
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			_ = w.Run(context.Background())
		}()
	}
	return p
}

// Emit records an event, filling ID, Category and Timestamp when unset.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Category == "" {
		event.Category = event.Action.Category()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if p.queue == nil {
		return p.store.Append(ctx, event)
	}

	p.closeMu.RLock()
	defer p.closeMu.RUnlock()
	if p.closed {
		return ErrBufferFull
	}
	select {
	case p.queue <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		if p.drops != nil {
			p.drops.IncrementAuditDropped()
		}
		p.logger.WarnContext(ctx, "audit event dropped", "action", event.Action, "request_id", event.RequestID)
		return ErrBufferFull
	}
}

// List returns the events recorded for an actor when the store can list.
func (p *Publisher) List(ctx context.Context, actorID uuid.UUID) ([]audit.Event, error) {
	l, ok := p.store.(audit.Lister)
	if !ok {
		return nil, errors.New("audit store does not support listing")
	}
	return l.ListByActor(ctx, actorID)
}

// Close stops accepting events and waits for the queue to drain.
func (p *Publisher) Close() {
	if p.queue == nil {
		return
	}
	p.closeMu.Lock()
	if p.closed {
		p.closeMu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.closeMu.Unlock()
	p.wg.Wait()
}
