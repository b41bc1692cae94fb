package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/0xalexb/confedit/document"
	"github.com/0xalexb/confedit/schema"
)

// Change describes an accepted command.
type Change struct {
	Kind     schema.Kind
	Command  string
	Version  uint64
	Snapshot *Snapshot

	// Edit is the journal entry the command appended. It is nil for Reset.
	Edit *document.Edit
}

// Observer is called after a command has been committed.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id    uint64
	store *Store
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.store == nil {
		return
	}

	s.store.obsMu.Lock()
	delete(s.store.observers, s.id)
	s.store.obsMu.Unlock()
}

// Store holds the current snapshot of every loaded document and applies commands one at a
// time, always against the latest snapshot.
type Store struct {
	logger *slog.Logger

	mu        sync.Mutex
	snapshots map[schema.Kind]*Snapshot

	obsMu     sync.RWMutex
	observers map[uint64]Observer
	nextID    uint64
}

// New creates a Store holding the given snapshots, at most one per kind.
func New(logger *slog.Logger, snaps ...*Snapshot) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store := &Store{
		logger:    logger,
		snapshots: make(map[schema.Kind]*Snapshot, len(snaps)),
		observers: make(map[uint64]Observer),
	}

	for _, snap := range snaps {
		if _, ok := store.snapshots[snap.kind]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDocument, snap.kind)
		}

		store.snapshots[snap.kind] = snap
	}

	return store, nil
}

// Kinds lists the loaded document kinds in a stable order.
func (s *Store) Kinds() []schema.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Sorted(maps.Keys(s.snapshots))
}

// Current returns the latest snapshot of kind.
func (s *Store) Current(kind schema.Kind) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.snapshots[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoDocument, kind)
	}

	return snap, nil
}

// Dispatch applies cmd to the latest snapshot of kind. When the command is rejected the
// stored snapshot stays in place and is returned alongside the *EditError.
func (s *Store) Dispatch(ctx context.Context, kind schema.Kind, cmd Command) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("dispatch %s: %w", commandName(cmd), err)
	}

	s.mu.Lock()

	prev, ok := s.snapshots[kind]
	if !ok {
		s.mu.Unlock()

		return nil, &EditError{Command: commandName(cmd), Err: fmt.Errorf("%w: %s", ErrNoDocument, kind)}
	}

	next, err := Apply(prev, cmd)
	if err != nil {
		s.mu.Unlock()
		s.logRejected(ctx, kind, cmd, err)

		return prev, err
	}

	s.snapshots[kind] = next
	s.mu.Unlock()

	change := Change{
		Kind:     kind,
		Command:  cmd.Name(),
		Version:  next.version,
		Snapshot: next,
	}

	if len(next.journal) > len(prev.journal) {
		last := next.journal[len(next.journal)-1]
		change.Edit = &last
	}

	s.logger.DebugContext(ctx, "edit accepted",
		slog.String("kind", string(kind)),
		slog.String("command", cmd.Name()),
		slog.Uint64("version", next.version),
	)

	s.notify(change)

	return next, nil
}

// Subscribe registers an observer for every accepted command. Observers run synchronously on
// the dispatching goroutine after the store lock is released.
func (s *Store) Subscribe(observer Observer) *Subscription {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers[id] = observer

	return &Subscription{id: id, store: s}
}

func (s *Store) notify(change Change) {
	s.obsMu.RLock()
	ids := slices.Sorted(maps.Keys(s.observers))
	observers := make([]Observer, 0, len(ids))

	for _, id := range ids {
		observers = append(observers, s.observers[id])
	}
	s.obsMu.RUnlock()

	for _, observer := range observers {
		observer(change)
	}
}

func (s *Store) logRejected(ctx context.Context, kind schema.Kind, cmd Command, err error) {
	attrs := []any{
		slog.String("kind", string(kind)),
		slog.String("command", commandName(cmd)),
		slog.String("error", err.Error()),
	}

	var editErr *EditError
	if errors.As(err, &editErr) {
		attrs = append(attrs, slog.String("reason", editErr.Kind().String()))
	}

	s.logger.WarnContext(ctx, "edit rejected", attrs...)
}
