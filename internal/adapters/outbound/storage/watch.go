package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type table string

const (
	floorsTable   table = "floors"
	productsTable table = "products"
)

// hub fans committed-mutation signals out to live queries. Each subscriber
// holds a one-slot wake channel, so bursts of writes coalesce into a single
// re-query.
type hub struct {
	mu        sync.Mutex
	subs      map[uuid.UUID]subscriber
	done      chan struct{}
	closeOnce sync.Once
}

type subscriber struct {
	table table
	wake  chan struct{}
}

func newHub() *hub {
	return &hub{
		subs: make(map[uuid.UUID]subscriber),
		done: make(chan struct{}),
	}
}

func (h *hub) subscribe(t table) (uuid.UUID, <-chan struct{}) {
	id := uuid.New()
	wake := make(chan struct{}, 1)
	h.mu.Lock()
	h.subs[id] = subscriber{table: t, wake: wake}
	h.mu.Unlock()
	return id, wake
}

func (h *hub) unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	delete(h.subs, id)
	h.mu.Unlock()
}

func (h *hub) publish(tables ...table) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		for _, t := range tables {
			if sub.table != t {
				continue
			}
			select {
			case sub.wake <- struct{}{}:
			default:
			}
		}
	}
}

func (h *hub) close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func (h *hub) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// watch emits the current result of query, then a fresh result after every
// committed mutation of t. The channel closes when ctx is done or the store
// closes. A slow reader only ever sees the newest snapshot.
func watch[T any](ctx context.Context, s *Store, t table, query func(context.Context) ([]T, error)) (<-chan []T, error) {
	// Subscribe before the first query so no commit falls between them.
	id, wake := s.hub.subscribe(t)

	first, err := query(ctx)
	if err != nil {
		s.hub.unsubscribe(id)
		return nil, err
	}

	log := s.log.With(zap.String("table", string(t)), zap.Stringer("subscription", id))
	log.Debug("live query started")

	out := make(chan []T, 1)
	out <- first

	go func() {
		defer close(out)
		defer s.hub.unsubscribe(id)
		for {
			select {
			case <-ctx.Done():
				log.Debug("live query cancelled")
				return
			case <-s.hub.done:
				log.Debug("live query ended by store close")
				return
			case <-wake:
				snap, err := query(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Warn("live query refresh failed", zap.Error(err))
					continue
				}
				deliver(out, snap)
			}
		}
	}()

	return out, nil
}

// deliver replaces any unread snapshot with snap. It never blocks because the
// calling goroutine is the only sender.
func deliver[T any](out chan []T, snap []T) {
	select {
	case out <- snap:
		return
	default:
	}
	select {
	case <-out:
	default:
	}
	out <- snap
}
