// Package domain provides the pure domain layer for editing sessions with no
// infrastructure dependencies.
//
// This package follows Domain-Driven Design (DDD) principles:
//   - Contains only pure Go code with standard library imports (time package only)
//   - Defines the Session entity with encapsulated state and behavior
//   - Defines the SessionRepository interface for persistence abstraction
//   - Provides domain-specific error types
//
// The domain layer has no knowledge of infrastructure concerns (databases, file I/O, etc.).
package domain

import "time"

// SessionState represents the lifecycle state of an editing session.
type SessionState string

const (
	// SessionStateActive indicates the session is currently open in the UI.
	SessionStateActive SessionState = "active"

	// SessionStateClosed indicates the session ended normally.
	SessionStateClosed SessionState = "closed"
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	return string(s)
}

// IsValid returns true if the state is a recognized session state.
func (s SessionState) IsValid() bool {
	switch s {
	case SessionStateActive, SessionStateClosed:
		return true
	default:
		return false
	}
}

// Session represents one editing session over a workspace. It records which
// file is open and basic activity metrics, so a later launch can restore
// where the user left off.
// All fields are unexported to enforce encapsulation; use the constructor
// and getter methods to access data.
type Session struct {
	id        int64
	guid      string
	workspace string
	state     SessionState

	// Last file opened in the editor, workspace-relative. Empty when no
	// file has been opened yet.
	openFile string

	// Metrics
	filesOpened    int
	savesPerformed int64

	// Timestamps
	createdAt      time.Time
	lastActivityAt *time.Time
	closedAt       *time.Time
	updatedAt      time.Time
	deletedAt      *time.Time
}

// NewSession creates a new active Session for the given workspace.
// The ID is left as zero; it will be assigned by the persistence layer.
func NewSession(guid, workspace string) *Session {
	now := time.Now()
	return &Session{
		guid:      guid,
		workspace: workspace,
		state:     SessionStateActive,
		createdAt: now,
		updatedAt: now,
	}
}

// ReconstituteSession creates a Session from existing data, typically when
// hydrating from the database. All fields are provided explicitly.
func ReconstituteSession(
	id int64,
	guid, workspace string,
	state SessionState,
	openFile string,
	filesOpened int,
	savesPerformed int64,
	createdAt time.Time,
	lastActivityAt, closedAt *time.Time,
	updatedAt time.Time,
	deletedAt *time.Time,
) *Session {
	return &Session{
		id:             id,
		guid:           guid,
		workspace:      workspace,
		state:          state,
		openFile:       openFile,
		filesOpened:    filesOpened,
		savesPerformed: savesPerformed,
		createdAt:      createdAt,
		lastActivityAt: lastActivityAt,
		closedAt:       closedAt,
		updatedAt:      updatedAt,
		deletedAt:      deletedAt,
	}
}

// ID returns the database identifier for this session.
// Returns 0 for newly created sessions that haven't been persisted.
func (s *Session) ID() int64 {
	return s.id
}

// SetID assigns the database identifier after the first save.
func (s *Session) SetID(id int64) {
	s.id = id
}

// GUID returns the globally unique identifier for this session.
func (s *Session) GUID() string {
	return s.guid
}

// Workspace returns the workspace root this session belongs to.
func (s *Session) Workspace() string {
	return s.workspace
}

// State returns the current state of this session.
func (s *Session) State() SessionState {
	return s.state
}

// OpenFile returns the workspace-relative path of the last opened file.
func (s *Session) OpenFile() string {
	return s.openFile
}

// FilesOpened returns how many file opens this session has recorded.
func (s *Session) FilesOpened() int {
	return s.filesOpened
}

// SavesPerformed returns how many disk writes this session has recorded.
func (s *Session) SavesPerformed() int64 {
	return s.savesPerformed
}

// CreatedAt returns when this session was created.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// LastActivityAt returns the time of the most recent open or save, or nil.
func (s *Session) LastActivityAt() *time.Time {
	return s.lastActivityAt
}

// ClosedAt returns when this session was closed, or nil while active.
func (s *Session) ClosedAt() *time.Time {
	return s.closedAt
}

// UpdatedAt returns when this session was last modified.
func (s *Session) UpdatedAt() time.Time {
	return s.updatedAt
}

// DeletedAt returns when this session was soft-deleted, or nil.
func (s *Session) DeletedAt() *time.Time {
	return s.deletedAt
}

// RecordOpen records that a file was opened in the editor.
func (s *Session) RecordOpen(path string) {
	s.openFile = path
	s.filesOpened++
	s.touch()
}

// RecordSave records a successful disk write.
func (s *Session) RecordSave() {
	s.savesPerformed++
	s.touch()
}

// Close transitions the session to the closed state. Closing an already
// closed session is a no-op.
func (s *Session) Close() {
	if s.state == SessionStateClosed {
		return
	}
	now := time.Now()
	s.state = SessionStateClosed
	s.closedAt = &now
	s.updatedAt = now
}

func (s *Session) touch() {
	now := time.Now()
	s.lastActivityAt = &now
	s.updatedAt = now
}
