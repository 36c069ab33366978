package sessions

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Session
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Session),
	}
}

// Create stores a new session record.
func (r *MemoryRepo) Create(ctx context.Context, session Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if session.ID == "" {
		return ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[session.ID] = session
	return nil
}

// GetByID returns a session by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, sessionID string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.data[sessionID]
	if !ok {
		return Session{}, ErrNotFound
	}
	return session, nil
}

// UpdateAnalysis records the detected structure, planned passes, and analysis
// completion time.
func (r *MemoryRepo) UpdateAnalysis(ctx context.Context, sessionID string, structure, plannedPasses []string, analyzedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.data[sessionID]
	if !ok {
		return ErrNotFound
	}
	session.Structure = append([]string(nil), structure...)
	session.PlannedPasses = append([]string(nil), plannedPasses...)
	session.Status = StatusAnalyzed
	session.AnalyzedAt = &analyzedAt
	session.UpdatedAt = analyzedAt
	r.data[sessionID] = session
	return nil
}

// MarkQuestionsGenerated records the questions-generation time.
func (r *MemoryRepo) MarkQuestionsGenerated(ctx context.Context, sessionID string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.data[sessionID]
	if !ok {
		return ErrNotFound
	}
	session.Status = StatusQuestions
	session.QuestionsAt = &at
	session.UpdatedAt = at
	r.data[sessionID] = session
	return nil
}

// MarkEnhanced records the enhanced-resume generation time.
func (r *MemoryRepo) MarkEnhanced(ctx context.Context, sessionID string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.data[sessionID]
	if !ok {
		return ErrNotFound
	}
	session.Status = StatusEnhanced
	session.EnhancedAt = &at
	session.UpdatedAt = at
	r.data[sessionID] = session
	return nil
}

// ListRecent returns sessions newest-first, honoring limit/offset.
func (r *MemoryRepo) ListRecent(ctx context.Context, limit, offset int) ([]Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	all := make([]Session, 0, len(r.data))
	for _, session := range r.data {
		all = append(all, session)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []Session{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
