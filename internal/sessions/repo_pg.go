package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new session row.
func (r *PGRepo) Create(ctx context.Context, session Session) error {
	if session.ID == "" {
		return ErrInvalidInput
	}
	const query = `
INSERT INTO sessions (id, source_file_name, char_count, structure, planned_passes, status, model, provider, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`
	structure, err := marshalJSONB(session.Structure)
	if err != nil {
		return err
	}
	passes, err := marshalJSONB(session.PlannedPasses)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		session.ID,
		session.SourceFileName,
		session.CharCount,
		structure,
		passes,
		session.Status,
		session.Model,
		session.Provider,
		session.CreatedAt,
	)
	return err
}

// GetByID returns a session by ID.
func (r *PGRepo) GetByID(ctx context.Context, sessionID string) (Session, error) {
	const query = `
SELECT id, source_file_name, char_count, structure, planned_passes, status, model, provider,
       analyzed_at, questions_at, enhanced_at, created_at, updated_at
FROM sessions
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, sessionID)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	return session, err
}

// UpdateAnalysis records the detected structure, planned passes, and analysis
// completion time.
func (r *PGRepo) UpdateAnalysis(ctx context.Context, sessionID string, structure, plannedPasses []string, analyzedAt time.Time) error {
	const query = `
UPDATE sessions
SET structure = $2, planned_passes = $3, status = $4, analyzed_at = $5, updated_at = $5
WHERE id = $1`
	structureJSON, err := marshalJSONB(structure)
	if err != nil {
		return err
	}
	passesJSON, err := marshalJSONB(plannedPasses)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, sessionID, structureJSON, passesJSON, StatusAnalyzed, analyzedAt)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// MarkQuestionsGenerated records the questions-generation time.
func (r *PGRepo) MarkQuestionsGenerated(ctx context.Context, sessionID string, at time.Time) error {
	const query = `
UPDATE sessions
SET status = $2, questions_at = $3, updated_at = $3
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, sessionID, StatusQuestions, at)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// MarkEnhanced records the enhanced-resume generation time.
func (r *PGRepo) MarkEnhanced(ctx context.Context, sessionID string, at time.Time) error {
	const query = `
UPDATE sessions
SET status = $2, enhanced_at = $3, updated_at = $3
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, sessionID, StatusEnhanced, at)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ListRecent returns sessions newest-first, honoring limit/offset.
func (r *PGRepo) ListRecent(ctx context.Context, limit, offset int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, source_file_name, char_count, structure, planned_passes, status, model, provider,
       analyzed_at, questions_at, enhanced_at, created_at, updated_at
FROM sessions
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, session)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (Session, error) {
	var s Session
	var structure, passes sql.NullString
	var analyzedAt, questionsAt, enhancedAt sql.NullTime
	err := row.Scan(
		&s.ID,
		&s.SourceFileName,
		&s.CharCount,
		&structure,
		&passes,
		&s.Status,
		&s.Model,
		&s.Provider,
		&analyzedAt,
		&questionsAt,
		&enhancedAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return Session{}, err
	}
	if structure.Valid && structure.String != "" {
		if err := json.Unmarshal([]byte(structure.String), &s.Structure); err != nil {
			return Session{}, err
		}
	}
	if passes.Valid && passes.String != "" {
		if err := json.Unmarshal([]byte(passes.String), &s.PlannedPasses); err != nil {
			return Session{}, err
		}
	}
	if analyzedAt.Valid {
		t := analyzedAt.Time
		s.AnalyzedAt = &t
	}
	if questionsAt.Valid {
		t := questionsAt.Time
		s.QuestionsAt = &t
	}
	if enhancedAt.Valid {
		t := enhancedAt.Time
		s.EnhancedAt = &t
	}
	return s, nil
}

func marshalJSONB(value []string) (any, error) {
	if value == nil {
		return nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
