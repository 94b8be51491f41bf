// Package store holds the live session state shared across the UI: the
// persisted session entity, the open-file selection, and the in-memory
// changed-file set. State changes fan out over a pubsub broker so panes
// mirror the store by subscription instead of polling.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/pubsub"
	"github.com/zjrosen/quill/internal/session/domain"
	"github.com/zjrosen/quill/internal/tree"
)

// EventKind labels a store event payload.
type EventKind int

const (
	// OpenFileChanged fires when the open-file selection changes.
	OpenFileChanged EventKind = iota
	// ChangedSetChanged fires when the changed-file set is replaced.
	ChangedSetChanged
)

// Event is the payload published on the store broker.
type Event struct {
	Kind     EventKind
	OpenFile string   // Set for OpenFileChanged
	Changed  []string // Set for ChangedSetChanged, sorted
}

// Store owns the session entity and the changed set. The open file and
// workspace persist through the session repository; the changed set is
// in-memory only and replaced wholesale on watcher events.
type Store struct {
	mu      sync.RWMutex
	repo    domain.SessionRepository
	session *domain.Session
	changed tree.ChangedSet
	broker  *pubsub.Broker[Event]
}

// New creates a store over the given repository.
func New(repo domain.SessionRepository) *Store {
	return &Store{
		repo:    repo,
		changed: tree.ChangedSet{},
		broker:  pubsub.NewBroker[Event](),
	}
}

// Open resumes the active session for the workspace, or starts a new one
// when none exists.
func (s *Store) Open(workspace string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.repo.GetActiveSession(workspace)
	if err != nil {
		var noActive *domain.NoActiveSessionError
		if !errors.As(err, &noActive) {
			return nil, fmt.Errorf("loading active session: %w", err)
		}
		session = domain.NewSession(uuid.NewString(), workspace)
		if err := s.repo.Save(session); err != nil {
			return nil, fmt.Errorf("creating session: %w", err)
		}
		log.Info(log.CatStore, "Started new session", "guid", session.GUID(), "workspace", workspace)
	} else {
		log.Info(log.CatStore, "Resumed session", "guid", session.GUID(), "openFile", session.OpenFile())
	}

	s.session = session
	return session, nil
}

// Session returns the current session entity, or nil before Open.
func (s *Store) Session() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// OpenFile returns the current open-file selection, or empty.
func (s *Store) OpenFile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.OpenFile()
}

// SetOpenFile records a user file selection, persists it, and publishes
// OpenFileChanged. Selecting the already-open file is a no-op.
func (s *Store) SetOpenFile(path string) error {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return errors.New("no session open")
	}
	if s.session.OpenFile() == path {
		s.mu.Unlock()
		return nil
	}

	s.session.RecordOpen(path)
	err := s.repo.Save(s.session)
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("persisting open file: %w", err)
	}

	s.broker.Publish(pubsub.UpdatedEvent, Event{Kind: OpenFileChanged, OpenFile: path})
	return nil
}

// RecordSave bumps the session's save counter. Persistence failures are
// logged, not surfaced; the metric is best-effort.
func (s *Store) RecordSave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return
	}
	s.session.RecordSave()
	if err := s.repo.Save(s.session); err != nil {
		log.ErrorErr(log.CatStore, "Failed to persist save count", err, "guid", s.session.GUID())
	}
}

// ChangedSet returns the current changed-file set.
func (s *Store) ChangedSet() tree.ChangedSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.changed
}

// ReplaceChanged swaps in a new changed set and publishes ChangedSetChanged.
func (s *Store) ReplaceChanged(paths []string) {
	set := tree.NewChangedSet(paths)

	s.mu.Lock()
	s.changed = set
	s.mu.Unlock()

	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	s.broker.Publish(pubsub.UpdatedEvent, Event{Kind: ChangedSetChanged, Changed: sorted})
}

// Broker returns the store event broker for subscriptions.
func (s *Store) Broker() *pubsub.Broker[Event] {
	return s.broker
}

// Close ends the session and releases the broker. The repository is owned
// by the caller and closed separately.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.broker.Close()
	if s.session == nil {
		return nil
	}
	s.session.Close()
	if err := s.repo.Save(s.session); err != nil {
		return fmt.Errorf("closing session: %w", err)
	}
	return nil
}
