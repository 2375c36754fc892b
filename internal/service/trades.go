package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/guttosm/tradesync/internal/domain/models"
	"github.com/guttosm/tradesync/internal/logger"
	"github.com/guttosm/tradesync/internal/storage"
	"github.com/guttosm/tradesync/internal/watcher"
)

// ErrClosed is returned by SubscribeToUpdates after Close.
var ErrClosed = errors.New("trades service closed")

// TradesService is the surface the presentation layer consumes.
type TradesService interface {
	// FetchSnapshot scans the trades directory now. Only *ingestion.ScanRootError is returned.
	FetchSnapshot() (*models.Snapshot, error)
	// SaveSnapshot acknowledges records without storing them.
	SaveSnapshot(records []models.TradeRecord) error
	// SubscribeToUpdates returns a stream of snapshots, one per settled change.
	SubscribeToUpdates(ctx context.Context) (*Subscription, error)
	// Root returns the trades directory being served.
	Root() string
	// Watching reports whether the watcher is running.
	Watching() bool
	// Close stops the watcher and closes every subscription.
	Close()
}

// Scanner produces snapshots of the trades directory.
type Scanner interface {
	Scan(trigger models.Trigger) (*models.Snapshot, error)
	Root() string
}

// snapshotSource is the watcher as seen by the service; tests provide fakes.
type snapshotSource interface {
	Start(ctx context.Context) error
	Stop()
	Snapshots() <-chan *models.Snapshot
}

// Options configures the live-update side of the service.
type Options struct {
	Debounce time.Duration // watcher quiet window
	Buffer   int           // per-subscriber buffer
}

type tradesService struct {
	scanner Scanner
	journal storage.ScanLogRepository // nil when the scan journal is disabled
	opts    Options

	newWatcher func(root string, scan watcher.ScanFunc, opts watcher.Options) snapshotSource

	mu     sync.Mutex
	source snapshotSource
	subs   map[*Subscription]struct{}
	closed bool
}

// NewTradesService wires the scanner, the optional scan journal and the
// watcher together. The watcher is started lazily by the first subscriber.
func NewTradesService(scanner Scanner, journal storage.ScanLogRepository, opts Options) TradesService {
	if opts.Buffer <= 0 {
		opts.Buffer = DefaultBuffer
	}
	return &tradesService{
		scanner: scanner,
		journal: journal,
		opts:    opts,
		newWatcher: func(root string, scan watcher.ScanFunc, o watcher.Options) snapshotSource {
			return watcher.New(root, scan, o)
		},
		subs: make(map[*Subscription]struct{}),
	}
}

func (s *tradesService) Root() string { return s.scanner.Root() }

func (s *tradesService) Watching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source != nil
}

func (s *tradesService) FetchSnapshot() (*models.Snapshot, error) {
	snap, err := s.scanner.Scan(models.TriggerFetch)
	if err != nil {
		logger.L().Error().Str("root", s.scanner.Root()).Err(err).Msg("fetch snapshot failed")
		return nil, err
	}
	s.record(snap)
	return snap, nil
}

// SaveSnapshot is a placeholder: edits are acknowledged but not persisted.
func (s *tradesService) SaveSnapshot(records []models.TradeRecord) error {
	logger.L().Info().Int("records", len(records)).Bool("persisted", false).Msg("save requested")
	return nil
}

// SubscribeToUpdates starts the watcher on first use and attaches a new subscription.
//
// If the root cannot be watched the subscription is still returned (it simply
// receives nothing); the next subscriber retries the watch setup.
func (s *tradesService) SubscribeToUpdates(ctx context.Context) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	s.ensureWatcherLocked()

	sub := newSubscription(s.opts.Buffer, s.unsubscribe)
	s.subs[sub] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
			sub.Close()
		case <-sub.Done():
		}
	}()

	logger.L().Debug().Int("subscribers", len(s.subs)).Msg("subscriber attached")
	return sub, nil
}

func (s *tradesService) ensureWatcherLocked() {
	if s.source != nil {
		return
	}
	scan := func() (*models.Snapshot, error) { return s.scanner.Scan(models.TriggerWatch) }
	w := s.newWatcher(s.scanner.Root(), scan, watcher.Options{Debounce: s.opts.Debounce})
	if err := w.Start(context.Background()); err != nil {
		// Already logged by the watcher; live updates are unavailable for now.
		return
	}
	s.source = w
	go s.fanOut(w.Snapshots())
}

// fanOut journals every watcher snapshot and hands it to each subscriber.
func (s *tradesService) fanOut(in <-chan *models.Snapshot) {
	for snap := range in {
		s.record(snap)

		s.mu.Lock()
		subs := make([]*Subscription, 0, len(s.subs))
		for sub := range s.subs {
			subs = append(subs, sub)
		}
		s.mu.Unlock()

		for _, sub := range subs {
			sub.deliver(snap)
		}
		logger.L().Info().Str("snapshot", snap.ID).Int("records", snap.Len()).Int("subscribers", len(subs)).Msg("trades updated")
	}
}

func (s *tradesService) unsubscribe(sub *Subscription) {
	s.mu.Lock()
	delete(s.subs, sub)
	s.mu.Unlock()
}

func (s *tradesService) record(snap *models.Snapshot) {
	if s.journal == nil {
		return
	}
	if err := s.journal.RecordScan(snap); err != nil {
		logger.L().Warn().Str("snapshot", snap.ID).Err(err).Msg("scan journal write failed")
	}
}

func (s *tradesService) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	source := s.source
	subs := make([]*Subscription, 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.subs = make(map[*Subscription]struct{})
	s.mu.Unlock()

	if source != nil {
		source.Stop()
	}
	for _, sub := range subs {
		sub.close()
	}
}
