package remote

import (
	"context"
	"log"
	"sync"
	"time"
)

// Update is a whole-collection replacement observed in the sync store.
type Update struct {
	Key  string
	Data []byte
}

// Syncer watches the document store and delivers collection replacements on
// Updates. Outbound pushes and inbound updates are both last-writer-wins;
// the syncer never merges documents.
type Syncer struct {
	repo     *Repository
	interval time.Duration
	updates  chan Update

	mu       sync.Mutex // guards lastSeen: Push runs on the app loop, poll on the sync goroutine
	lastSeen time.Time
}

// NewSyncer creates a syncer polling at the given interval. Updates already
// in the store are considered seen; only changes after construction are
// delivered.
func NewSyncer(repo *Repository, interval time.Duration) *Syncer {
	return &Syncer{
		repo:     repo,
		interval: interval,
		updates:  make(chan Update, 16),
		lastSeen: time.Now().UTC(),
	}
}

// Updates is the channel of inbound collection replacements.
func (s *Syncer) Updates() <-chan Update {
	return s.updates
}

// Push writes one collection snapshot to the store and advances the seen
// marker so the write is not echoed back as an inbound update.
func (s *Syncer) Push(ctx context.Context, key string, data []byte) error {
	if err := s.repo.Save(ctx, key, data); err != nil {
		return err
	}
	if doc, err := s.repo.Get(ctx, key); err == nil && doc != nil {
		s.advance(doc.UpdatedAt)
	}
	return nil
}

func (s *Syncer) advance(to time.Time) {
	s.mu.Lock()
	if to.After(s.lastSeen) {
		s.lastSeen = to
	}
	s.mu.Unlock()
}

func (s *Syncer) seen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Run polls the store until the context is cancelled, forwarding changed
// documents to the Updates channel. Poll failures are logged and retried on
// the next tick.
func (s *Syncer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.updates)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

func (s *Syncer) poll(ctx context.Context) {
	docs, err := s.repo.ChangedSince(ctx, s.seen())
	if err != nil {
		log.Printf("sync poll failed: %v", err)
		return
	}
	for _, doc := range docs {
		s.advance(doc.UpdatedAt)
		select {
		case s.updates <- Update{Key: doc.Key, Data: doc.Data}:
		case <-ctx.Done():
			return
		}
	}
}
