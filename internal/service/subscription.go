package service

import (
	"sync"

	"github.com/guttosm/tradesync/internal/domain/models"
	"github.com/guttosm/tradesync/internal/logger"
)

// DefaultBuffer is the number of undelivered snapshots kept per subscriber.
const DefaultBuffer = 4

// Subscription is a push stream of snapshots, one per settled filesystem change.
//
// Each subscription buffers up to its capacity; when a slow consumer lets the
// buffer fill up, the oldest pending snapshot is discarded to make room for the
// newest. The stream never completes on its own: C() is closed only by Close,
// cancellation of the subscribing context, or service shutdown.
type Subscription struct {
	ch   chan *models.Snapshot
	done chan struct{}

	mu      sync.Mutex
	closed  bool
	dropped int

	onClose func(*Subscription)
}

func newSubscription(buffer int, onClose func(*Subscription)) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Subscription{
		ch:      make(chan *models.Snapshot, buffer),
		done:    make(chan struct{}),
		onClose: onClose,
	}
}

// C returns the channel snapshots are delivered on.
func (s *Subscription) C() <-chan *models.Snapshot { return s.ch }

// Done is closed once the subscription is closed.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Dropped reports how many snapshots were discarded because the consumer lagged.
func (s *Subscription) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Close ends the subscription and closes C(). Safe to call more than once.
func (s *Subscription) Close() {
	if s.close() && s.onClose != nil {
		s.onClose(s)
	}
}

// close marks the subscription closed and reports whether this call did it.
func (s *Subscription) close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.closed = true
	close(s.ch)
	close(s.done)
	return true
}

// deliver enqueues snap without blocking, discarding the oldest pending
// snapshot when the buffer is full.
func (s *Subscription) deliver(snap *models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for {
		select {
		case s.ch <- snap:
			return
		default:
		}
		select {
		case old := <-s.ch:
			s.dropped++
			logger.L().Warn().
				Str("dropped_snapshot", old.ID).
				Int("dropped_total", s.dropped).
				Msg("subscriber lagging, dropped oldest snapshot")
		default:
		}
	}
}
