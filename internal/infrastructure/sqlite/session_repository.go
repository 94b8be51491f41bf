package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/quill/internal/session/domain"
)

// sessionColumns is the list of columns to select for session queries.
const sessionColumns = `id, guid, workspace, state, open_file, files_opened, saves_performed,
	created_at, last_activity_at, closed_at, updated_at, deleted_at`

// sessionRepository implements domain.SessionRepository using SQLite.
type sessionRepository struct {
	db *sql.DB
}

// newSessionRepository creates a new sessionRepository instance.
func newSessionRepository(db *sql.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

// Ensure sessionRepository implements domain.SessionRepository.
var _ domain.SessionRepository = (*sessionRepository)(nil)

// scanSession scans a row into a SessionModel.
func scanSession(scanner interface{ Scan(...any) error }) (*SessionModel, error) {
	var model SessionModel
	err := scanner.Scan(
		&model.ID, &model.GUID, &model.Workspace, &model.State, &model.OpenFile,
		&model.FilesOpened, &model.SavesPerformed,
		&model.CreatedAt, &model.LastActivityAt, &model.ClosedAt, &model.UpdatedAt, &model.DeletedAt,
	)
	return &model, err
}

// Save persists a session to the database.
// For new sessions (ID == 0), inserts a new row and sets the session ID.
// For existing sessions (ID > 0), updates the existing row.
func (r *sessionRepository) Save(session *domain.Session) error {
	model := toSessionModel(session)

	if session.ID() == 0 {
		result, err := r.db.Exec(
			`INSERT INTO sessions (
				guid, workspace, state, open_file, files_opened, saves_performed,
				created_at, last_activity_at, closed_at, updated_at, deleted_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			model.GUID, model.Workspace, model.State, model.OpenFile,
			model.FilesOpened, model.SavesPerformed,
			model.CreatedAt, model.LastActivityAt, model.ClosedAt, model.UpdatedAt, model.DeletedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		session.SetID(id)
		return nil
	}

	_, err := r.db.Exec(
		`UPDATE sessions SET
			state = ?, open_file = ?, files_opened = ?, saves_performed = ?,
			last_activity_at = ?, closed_at = ?, updated_at = ?, deleted_at = ?
		WHERE id = ?`,
		model.State, model.OpenFile, model.FilesOpened, model.SavesPerformed,
		model.LastActivityAt, model.ClosedAt, model.UpdatedAt, model.DeletedAt,
		model.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

// FindByGUID retrieves a session by its GUID within a specific workspace.
// Returns SessionNotFoundError if no matching session exists.
// Soft-deleted sessions are not returned.
func (r *sessionRepository) FindByGUID(workspace, guid string) (*domain.Session, error) {
	row := r.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions WHERE workspace = ? AND guid = ? AND deleted_at IS NULL`,
		workspace, guid,
	)
	model, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.SessionNotFoundError{GUID: guid, Workspace: workspace}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session by guid: %w", err)
	}
	return model.toDomain(), nil
}

// FindByID retrieves a session by its internal database ID.
// Returns SessionNotFoundError if no matching session exists.
// Soft-deleted sessions are not returned.
// Note: This method does not filter by workspace as it's used for internal lookups.
func (r *sessionRepository) FindByID(id int64) (*domain.Session, error) {
	row := r.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	model, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.SessionNotFoundError{}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session by id: %w", err)
	}
	return model.toDomain(), nil
}

// GetActiveSession retrieves the active session for a workspace.
// Returns NoActiveSessionError if no session is in the active state.
func (r *sessionRepository) GetActiveSession(workspace string) (*domain.Session, error) {
	row := r.db.QueryRow(
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE workspace = ? AND state = 'active' AND deleted_at IS NULL
		 ORDER BY created_at DESC LIMIT 1`,
		workspace,
	)
	model, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NoActiveSessionError{Workspace: workspace}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	return model.toDomain(), nil
}

// Delete performs a soft delete on a session by setting its deletedAt timestamp.
// Returns SessionNotFoundError if no matching session exists.
func (r *sessionRepository) Delete(workspace, guid string) error {
	now := time.Now().Unix()
	result, err := r.db.Exec(
		`UPDATE sessions SET deleted_at = ?, updated_at = ?
		 WHERE workspace = ? AND guid = ? AND deleted_at IS NULL`,
		now, now, workspace, guid,
	)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.SessionNotFoundError{GUID: guid, Workspace: workspace}
	}
	return nil
}

// ListWithFilter retrieves sessions for a workspace matching the given filter criteria.
// Results are ordered by created_at descending (newest first).
func (r *sessionRepository) ListWithFilter(workspace string, filter domain.ListFilter) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE workspace = ?`
	args := []any{workspace}

	if filter.State != "" {
		query += ` AND state = ?`
		args = append(args, string(filter.State))
	}

	if !filter.IncludeDeleted {
		query += ` AND deleted_at IS NULL`
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.Session
	for rows.Next() {
		model, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}

	return sessions, nil
}

// Close releases any resources held by the repository.
// This is a no-op because the connection is owned by the DB struct.
func (r *sessionRepository) Close() error {
	// No-op: connection is owned by DB struct
	return nil
}
