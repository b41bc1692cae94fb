package export

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL bounds how long an unreleased download is kept.
const DefaultTTL = 10 * time.Minute

type download struct {
	handle   Handle
	data     []byte
	acquired time.Time
}

// MemorySink keeps exports in memory until they are downloaded, released or expire.
type MemorySink struct {
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger

	mu        sync.Mutex
	downloads map[string]*download

	stop chan struct{}
	done chan struct{}
}

// MemoryOption configures a MemorySink.
type MemoryOption func(*MemorySink)

// WithTTL sets how long an acquired download survives without a release.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(s *MemorySink) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemorySink) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used by the janitor.
func WithLogger(logger *slog.Logger) MemoryOption {
	return func(s *MemorySink) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink(opts ...MemoryOption) *MemorySink {
	sink := &MemorySink{
		ttl:       DefaultTTL,
		now:       time.Now,
		logger:    slog.Default(),
		downloads: make(map[string]*download),
	}

	for _, opt := range opts {
		opt(sink)
	}

	return sink
}

// Acquire stores a copy of data under a fresh download id.
func (s *MemorySink) Acquire(ctx context.Context, data []byte, filename string) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return Handle{}, err
	}

	if filename == "" {
		return Handle{}, ErrEmptyFilename
	}

	id := uuid.NewString()
	handle := Handle{
		ID:       id,
		Filename: filename,
		Location: id,
		Size:     len(data),
	}

	s.mu.Lock()
	s.downloads[id] = &download{
		handle:   handle,
		data:     slices.Clone(data),
		acquired: s.now(),
	}
	s.mu.Unlock()

	return handle, nil
}

// Open returns the handle and data of an acquired download without releasing it.
func (s *MemorySink) Open(_ context.Context, id string) (Handle, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dl, ok := s.downloads[id]
	if !ok {
		return Handle{}, nil, fmt.Errorf("%w: %s", ErrUnknownHandle, id)
	}

	return dl.handle, dl.data, nil
}

// Release drops the download behind handle.
func (s *MemorySink) Release(_ context.Context, handle Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.downloads[handle.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, handle.ID)
	}

	delete(s.downloads, handle.ID)

	return nil
}

// Len returns the number of unreleased downloads.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.downloads)
}

// Sweep releases every download older than the TTL and returns how many were dropped.
func (s *MemorySink) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	expired := 0

	for id, dl := range s.downloads {
		if dl.acquired.Before(cutoff) {
			delete(s.downloads, id)
			expired++
		}
	}

	return expired
}

// Start runs the janitor until Stop is called. It sweeps every half TTL.
func (s *MemorySink) Start(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		return nil
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.janitor(s.stop, s.done)

	return nil
}

// Stop halts the janitor and waits for it to exit.
func (s *MemorySink) Stop(ctx context.Context) error {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return nil
	}

	close(stop)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stopping janitor: %w", ctx.Err())
	}
}

func (s *MemorySink) janitor(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	interval := max(s.ttl/2, time.Millisecond) //nolint:mnd // sweep twice per TTL

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info("expired downloads released", slog.Int("count", n))
			}
		}
	}
}
