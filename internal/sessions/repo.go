package sessions

import (
	"context"
	"time"
)

// Repo defines persistence operations for session metadata.
type Repo interface {
	Create(ctx context.Context, session Session) error
	GetByID(ctx context.Context, sessionID string) (Session, error)
	UpdateAnalysis(ctx context.Context, sessionID string, structure, plannedPasses []string, analyzedAt time.Time) error
	MarkQuestionsGenerated(ctx context.Context, sessionID string, at time.Time) error
	MarkEnhanced(ctx context.Context, sessionID string, at time.Time) error
	ListRecent(ctx context.Context, limit, offset int) ([]Session, error)
}
