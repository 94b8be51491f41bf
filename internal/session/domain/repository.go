package domain

// ListFilter provides filtering options for listing sessions.
type ListFilter struct {
	// State filters sessions by their current state.
	// If empty, all states are included.
	State SessionState

	// Limit restricts the number of sessions returned.
	// If 0, no limit is applied.
	Limit int

	// IncludeDeleted includes soft-deleted sessions in results.
	// By default, deleted sessions are excluded.
	IncludeDeleted bool
}

// SessionRepository defines the persistence interface for Session entities.
// Implementations may use SQLite, in-memory storage, or other backends.
type SessionRepository interface {
	// Save persists a session to the repository.
	// For new sessions (ID == 0), this creates a new record and sets the ID.
	// For existing sessions (ID > 0), this updates the existing record.
	Save(session *Session) error

	// FindByGUID retrieves a session by its GUID within a specific workspace.
	// Returns SessionNotFoundError if no matching session exists.
	// Soft-deleted sessions are not returned.
	FindByGUID(workspace, guid string) (*Session, error)

	// FindByID retrieves a session by its internal database ID.
	// Returns SessionNotFoundError if no matching session exists.
	// Soft-deleted sessions are not returned.
	FindByID(id int64) (*Session, error)

	// GetActiveSession retrieves the active session for a workspace.
	// Returns NoActiveSessionError if no session is in the active state.
	GetActiveSession(workspace string) (*Session, error)

	// Delete performs a soft delete on a session by setting its deletedAt timestamp.
	// Returns SessionNotFoundError if no matching session exists.
	Delete(workspace, guid string) error

	// ListWithFilter retrieves sessions for a workspace matching the given
	// filter criteria. Results are ordered by created_at descending.
	ListWithFilter(workspace string, filter ListFilter) ([]*Session, error)

	// Close releases any resources held by the repository.
	Close() error
}
