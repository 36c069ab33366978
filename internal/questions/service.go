package questions

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"cv-suite/internal/llm"
	"cv-suite/internal/sessions"
	"cv-suite/internal/shared/metrics"
	"cv-suite/internal/shared/storage/object"
	"cv-suite/internal/shared/telemetry"
)

//go:embed prompts/generate_questions.txt
var questionsPrompt string

const maxQuestionTokens = 65000

// Result is the outcome of one question-generation run.
type Result struct {
	SessionID    string `json:"sessionId"`
	Response     string `json:"response"`
	ResponseFile string `json:"responseFile"`
}

// Service generates interview questions from a session's extracted text and
// compiled analysis report.
type Service struct {
	Store object.Store
	Repo  sessions.Repo
	LLM   llm.Client
}

// Generate runs one completion over the resume text and the compiled report
// and stores the raw output verbatim. Both inputs must already exist.
func (s *Service) Generate(ctx context.Context, sessionID string) (Result, error) {
	cvText, err := sessions.ReadArtifact(ctx, s.Store, sessions.ExtractedTextKey(sessionID))
	if err != nil {
		return Result{}, err
	}
	report, err := sessions.ReadArtifact(ctx, s.Store, sessions.ReportKey(sessionID))
	if err != nil {
		return Result{}, err
	}

	prompt := questionsPrompt + "\n\nCV CONTENT:\n" + strings.TrimSpace(cvText) + "\n\nCV REVIEW:\n" + report
	output, err := s.LLM.Complete(ctx, llm.Request{
		Prompt:          prompt,
		MaxOutputTokens: maxQuestionTokens,
	})
	if err != nil {
		telemetry.Error("questions.generate.failed", map[string]any{
			"sessionId": sessionID,
			"error":     err.Error(),
		})
		return Result{}, fmt.Errorf("generate questions: %w", err)
	}
	output = strings.TrimSpace(output)

	key := sessions.QuestionsKey(sessionID)
	if _, err := s.Store.Save(ctx, key, "text/plain; charset=utf-8", strings.NewReader(output)); err != nil {
		return Result{}, fmt.Errorf("save questions %s: %w", key, err)
	}

	if err := s.Repo.MarkQuestionsGenerated(ctx, sessionID, time.Now().UTC()); err != nil && !errors.Is(err, sessions.ErrNotFound) {
		return Result{}, fmt.Errorf("update session %s: %w", sessionID, err)
	}

	metrics.IncQuestionsGenerated()
	telemetry.Info("questions.generate.complete", map[string]any{"sessionId": sessionID})

	return Result{SessionID: sessionID, Response: output, ResponseFile: key}, nil
}

// Get returns previously generated questions for a session.
func (s *Service) Get(ctx context.Context, sessionID string) (string, error) {
	return sessions.ReadArtifact(ctx, s.Store, sessions.QuestionsKey(sessionID))
}
