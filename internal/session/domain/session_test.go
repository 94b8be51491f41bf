package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionState_String(t *testing.T) {
	tests := []struct {
		state    SessionState
		expected string
	}{
		{SessionStateActive, "active"},
		{SessionStateClosed, "closed"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestSessionState_IsValid(t *testing.T) {
	tests := []struct {
		state   SessionState
		isValid bool
	}{
		{SessionStateActive, true},
		{SessionStateClosed, true},
		{SessionState("invalid"), false},
		{SessionState(""), false},
		{SessionState("ACTIVE"), false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			require.Equal(t, tt.isValid, tt.state.IsValid())
		})
	}
}

func TestNewSession(t *testing.T) {
	before := time.Now()
	session := NewSession("test-guid-123", "/work/project")
	after := time.Now()

	require.Equal(t, int64(0), session.ID(), "ID should be 0 for new sessions")
	require.Equal(t, "test-guid-123", session.GUID())
	require.Equal(t, "/work/project", session.Workspace())
	require.Equal(t, SessionStateActive, session.State())
	require.Empty(t, session.OpenFile())
	require.Zero(t, session.FilesOpened())
	require.Zero(t, session.SavesPerformed())

	require.False(t, session.CreatedAt().Before(before), "createdAt should be >= before")
	require.False(t, session.CreatedAt().After(after), "createdAt should be <= after")
	require.Equal(t, session.CreatedAt(), session.UpdatedAt(), "createdAt and updatedAt should match for new session")

	require.Nil(t, session.LastActivityAt())
	require.Nil(t, session.ClosedAt())
	require.Nil(t, session.DeletedAt())
}

func TestSession_RecordOpen(t *testing.T) {
	session := NewSession("guid", "/work/project")

	session.RecordOpen("src/app.ts")
	session.RecordOpen("src/util.ts")

	require.Equal(t, "src/util.ts", session.OpenFile(), "open file tracks the most recent open")
	require.Equal(t, 2, session.FilesOpened())
	require.NotNil(t, session.LastActivityAt())
}

func TestSession_RecordSave(t *testing.T) {
	session := NewSession("guid", "/work/project")

	session.RecordSave()
	session.RecordSave()
	session.RecordSave()

	require.Equal(t, int64(3), session.SavesPerformed())
	require.NotNil(t, session.LastActivityAt())
}

func TestSession_Close(t *testing.T) {
	session := NewSession("guid", "/work/project")

	session.Close()
	require.Equal(t, SessionStateClosed, session.State())
	require.NotNil(t, session.ClosedAt())

	// Closing again is a no-op
	first := *session.ClosedAt()
	session.Close()
	require.Equal(t, first, *session.ClosedAt())
}

func TestReconstituteSession(t *testing.T) {
	created := time.Unix(1700000000, 0)
	updated := time.Unix(1700001000, 0)
	activity := time.Unix(1700000500, 0)

	session := ReconstituteSession(
		42, "guid", "/work/project", SessionStateActive,
		"src/app.ts", 5, 12,
		created, &activity, nil, updated, nil,
	)

	require.Equal(t, int64(42), session.ID())
	require.Equal(t, "src/app.ts", session.OpenFile())
	require.Equal(t, 5, session.FilesOpened())
	require.Equal(t, int64(12), session.SavesPerformed())
	require.Equal(t, created, session.CreatedAt())
	require.Equal(t, &activity, session.LastActivityAt())
	require.Equal(t, updated, session.UpdatedAt())
}
