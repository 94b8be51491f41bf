package domain

import "fmt"

// SessionNotFoundError indicates a lookup did not match any session.
type SessionNotFoundError struct {
	GUID      string
	Workspace string
}

func (e *SessionNotFoundError) Error() string {
	if e.GUID == "" {
		return "session not found"
	}
	return fmt.Sprintf("session %s not found in workspace %s", e.GUID, e.Workspace)
}

// NoActiveSessionError indicates a workspace has no session in the active state.
type NoActiveSessionError struct {
	Workspace string
}

func (e *NoActiveSessionError) Error() string {
	return fmt.Sprintf("no active session for workspace %s", e.Workspace)
}
