package enhance

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cv-suite/internal/llm"
	"cv-suite/internal/sessions"
	"cv-suite/internal/shared/metrics"
	"cv-suite/internal/shared/storage/object"
	"cv-suite/internal/shared/telemetry"
)

//go:embed prompts/generate_resume.txt
var resumePrompt string

const maxResumeTokens = 65000

// QA is one clarification question with the user's answer. Empty answers are
// legal and still rendered in the prompt.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Document is the persisted enhanced-resume artifact.
type Document struct {
	SessionID      string    `json:"session_id"`
	CVText         string    `json:"cv_text"`
	AnalysisText   string    `json:"analysis_text"`
	Questions      []QA      `json:"questions"`
	EnhancedResume string    `json:"enhanced_resume"`
	ModelUsed      string    `json:"model_used"`
	Timestamp      time.Time `json:"timestamp"`
}

// Service generates an enhanced resume from the original text, the compiled
// analysis, and answered clarification questions.
type Service struct {
	Store object.Store
	Repo  sessions.Repo
	LLM   llm.Client
	Model string
}

// Input carries one enhancement request. CVText and AnalysisText may be
// omitted when SessionID names a session whose artifacts exist.
type Input struct {
	SessionID    string
	CVText       string
	AnalysisText string
	QA           []QA
}

// Generate runs one completion and persists the structured result. Returns
// the stored document.
func (s *Service) Generate(ctx context.Context, in Input) (Document, error) {
	if in.SessionID == "" {
		in.SessionID = uuid.NewString()
	}
	if in.CVText == "" {
		text, err := sessions.ReadArtifact(ctx, s.Store, sessions.ExtractedTextKey(in.SessionID))
		if err != nil {
			return Document{}, err
		}
		in.CVText = text
	}
	if in.AnalysisText == "" {
		text, err := sessions.ReadArtifact(ctx, s.Store, sessions.ReportKey(in.SessionID))
		if err != nil {
			return Document{}, err
		}
		in.AnalysisText = text
	}

	prompt := resumePrompt +
		"\n\nORIGINAL CV:\n" + strings.TrimSpace(in.CVText) +
		"\n\nCOMPREHENSIVE ANALYSIS:\n" + in.AnalysisText +
		FormatQA(in.QA)

	output, err := s.LLM.Complete(ctx, llm.Request{
		Prompt:          prompt,
		MaxOutputTokens: maxResumeTokens,
	})
	if err != nil {
		telemetry.Error("enhance.generate.failed", map[string]any{
			"sessionId": in.SessionID,
			"error":     err.Error(),
		})
		return Document{}, fmt.Errorf("generate enhanced resume: %w", err)
	}

	doc := Document{
		SessionID:      in.SessionID,
		CVText:         in.CVText,
		AnalysisText:   in.AnalysisText,
		Questions:      in.QA,
		EnhancedResume: strings.TrimSpace(output),
		ModelUsed:      s.Model,
		Timestamp:      time.Now().UTC(),
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Document{}, fmt.Errorf("marshal enhanced resume: %w", err)
	}
	key := sessions.EnhancedResumeKey(in.SessionID)
	if _, err := s.Store.Save(ctx, key, "application/json", bytes.NewReader(payload)); err != nil {
		return Document{}, fmt.Errorf("save enhanced resume %s: %w", key, err)
	}

	if err := s.Repo.MarkEnhanced(ctx, in.SessionID, doc.Timestamp); err != nil && !errors.Is(err, sessions.ErrNotFound) {
		return Document{}, fmt.Errorf("update session %s: %w", in.SessionID, err)
	}

	metrics.IncResumeEnhanced()
	telemetry.Info("enhance.generate.complete", map[string]any{
		"sessionId": in.SessionID,
		"questions": len(in.QA),
	})
	return doc, nil
}

// FormatQA renders ordered question-answer pairs as a numbered block.
// Unanswered questions keep their slot so the model sees what went
// unanswered.
func FormatQA(pairs []QA) string {
	var b strings.Builder
	b.WriteString("\n\nDETAILED QUESTION-ANSWER RESPONSES:\n")
	for i, qa := range pairs {
		fmt.Fprintf(&b, "\nQ%d: %s\nA%d: %s\n", i+1, qa.Question, i+1, qa.Answer)
	}
	return b.String()
}
