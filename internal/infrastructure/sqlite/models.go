package sqlite

import (
	"time"

	"github.com/zjrosen/quill/internal/session/domain"
)

// SessionModel represents the database row for the sessions table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type SessionModel struct {
	ID        int64
	GUID      string
	Workspace string
	State     string
	OpenFile  *string // nullable

	// Metrics
	FilesOpened    int
	SavesPerformed int64

	// Timestamps
	CreatedAt      int64  // Unix timestamp
	LastActivityAt *int64 // Unix timestamp, nullable
	ClosedAt       *int64 // Unix timestamp, nullable
	UpdatedAt      int64  // Unix timestamp
	DeletedAt      *int64 // Unix timestamp, nullable
}

// toSessionModel converts a domain Session entity to a database SessionModel.
func toSessionModel(s *domain.Session) *SessionModel {
	m := &SessionModel{
		ID:             s.ID(),
		GUID:           s.GUID(),
		Workspace:      s.Workspace(),
		State:          string(s.State()),
		FilesOpened:    s.FilesOpened(),
		SavesPerformed: s.SavesPerformed(),
		CreatedAt:      s.CreatedAt().Unix(),
		UpdatedAt:      s.UpdatedAt().Unix(),
	}
	if s.OpenFile() != "" {
		openFile := s.OpenFile()
		m.OpenFile = &openFile
	}
	if s.LastActivityAt() != nil {
		lastActivityAt := s.LastActivityAt().Unix()
		m.LastActivityAt = &lastActivityAt
	}
	if s.ClosedAt() != nil {
		closedAt := s.ClosedAt().Unix()
		m.ClosedAt = &closedAt
	}
	if s.DeletedAt() != nil {
		deletedAt := s.DeletedAt().Unix()
		m.DeletedAt = &deletedAt
	}
	return m
}

// toDomain converts a database SessionModel to a domain Session entity.
func (m *SessionModel) toDomain() *domain.Session {
	var openFile string
	if m.OpenFile != nil {
		openFile = *m.OpenFile
	}
	var lastActivityAt *time.Time
	if m.LastActivityAt != nil {
		t := time.Unix(*m.LastActivityAt, 0)
		lastActivityAt = &t
	}
	var closedAt *time.Time
	if m.ClosedAt != nil {
		t := time.Unix(*m.ClosedAt, 0)
		closedAt = &t
	}
	var deletedAt *time.Time
	if m.DeletedAt != nil {
		t := time.Unix(*m.DeletedAt, 0)
		deletedAt = &t
	}
	return domain.ReconstituteSession(
		m.ID,
		m.GUID,
		m.Workspace,
		domain.SessionState(m.State),
		openFile,
		m.FilesOpened,
		m.SavesPerformed,
		time.Unix(m.CreatedAt, 0),
		lastActivityAt,
		closedAt,
		time.Unix(m.UpdatedAt, 0),
		deletedAt,
	)
}
