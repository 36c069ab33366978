package uploads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cv-suite/internal/extract"
	"cv-suite/internal/sessions"
	"cv-suite/internal/shared/storage/object"
	"cv-suite/internal/shared/telemetry"
)

// Result describes a processed upload.
type Result struct {
	SessionID       string `json:"sessionId"`
	ExtractedCVPath string `json:"extractedCvPath"`
	TextPreview     string `json:"textPreview"`
	CharacterCount  int    `json:"characterCount"`
}

// Service ingests PDF resumes: extract text, persist it, open a session.
type Service struct {
	Store    object.Store
	Repo     sessions.Repo
	Provider string
	Model    string
}

// Process extracts text from the PDF bytes and creates a new session for it.
func (s *Service) Process(ctx context.Context, fileName string, data []byte) (Result, error) {
	text, err := extract.Text(ctx, data)
	if err != nil {
		return Result{}, fmt.Errorf("extract %s: %w", fileName, err)
	}

	sessionID := uuid.NewString()
	key := sessions.ExtractedTextKey(sessionID)
	if _, err := s.Store.Save(ctx, key, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return Result{}, fmt.Errorf("save extracted text %s: %w", key, err)
	}

	now := time.Now().UTC()
	err = s.Repo.Create(ctx, sessions.Session{
		ID:             sessionID,
		SourceFileName: fileName,
		CharCount:      int64(len(text)),
		Status:         sessions.StatusUploaded,
		Provider:       s.Provider,
		Model:          s.Model,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return Result{}, fmt.Errorf("create session: %w", err)
	}

	telemetry.Info("uploads.processed", map[string]any{
		"sessionId": sessionID,
		"fileName":  fileName,
		"charCount": len(text),
	})

	return Result{
		SessionID:       sessionID,
		ExtractedCVPath: key,
		TextPreview:     text,
		CharacterCount:  len(text),
	}, nil
}
