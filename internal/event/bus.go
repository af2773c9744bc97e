// Package event implements the in-process pub/sub that stands in for the
// original storage layer's live-subscription mechanism. Repositories publish
// a TransactionEvent after every committed write; the reconciliation engine
// and the SSE fan-out subscribe.
package event

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Event types.
const (
	IncomeCreated  = "income.created"
	IncomeDeleted  = "income.deleted"
	ExpenseCreated = "expense.created"
	ExpenseDeleted = "expense.deleted"
)

// TransactionEvent announces a change in the income or expense record set.
// Date is the record's YYYY-MM-DD key, so subscribers can ignore events that
// do not concern the day they track.
type TransactionEvent struct {
	Type string
	Date string
}

// Handler processes a published event. Handlers run synchronously on the
// publisher's goroutine; they must not block for long.
type Handler func(ctx context.Context, evt TransactionEvent)

// Bus is a minimal in-memory publish/subscribe fan-out.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all transaction events.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish delivers the event to every registered handler. A panicking
// handler is recovered and logged so one bad subscriber cannot take down
// the write path.
func (b *Bus) Publish(ctx context.Context, evt TransactionEvent) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, h := range handlers {
		b.dispatch(ctx, h, evt)
	}
}

func (b *Bus) dispatch(ctx context.Context, h Handler, evt TransactionEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("event_type", evt.Type).
				Str("date", evt.Date).
				Interface("panic", r).
				Msg("event handler panicked")
		}
	}()
	h(ctx, evt)
}
