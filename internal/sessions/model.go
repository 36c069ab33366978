package sessions

import "time"

// Stage status values for a session.
const (
	StatusUploaded  = "uploaded"
	StatusAnalyzed  = "analyzed"
	StatusQuestions = "questions_generated"
	StatusEnhanced  = "enhanced"
)

// Session is the unit of work spanning one uploaded resume. Artifacts live in
// the object store under keys derived from the session ID; the session record
// indexes metadata only.
type Session struct {
	ID             string
	SourceFileName string
	CharCount      int64
	Structure      []string
	PlannedPasses  []string
	Status         string
	Provider       string
	Model          string
	AnalyzedAt     *time.Time
	QuestionsAt    *time.Time
	EnhancedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
