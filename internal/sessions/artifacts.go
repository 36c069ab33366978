package sessions

import (
	"context"
	"fmt"
	"io"
	"path"

	"cv-suite/internal/shared/storage/object"
)

// Artifact layout: one directory for inputs, one for outputs. Filenames are
// the index; there is no per-artifact record.
const (
	inputsDir  = "resume"
	outputsDir = "data"
)

// ExtractedTextKey returns the key of the cleaned extracted resume text.
func ExtractedTextKey(sessionID string) string {
	return path.Join(inputsDir, sessionID+"_extracted.txt")
}

// PassOutputKey returns the key of one analysis pass output.
func PassOutputKey(sessionID, passName string) string {
	return path.Join(outputsDir, sessionID+"_"+passName+".txt")
}

// ReportKey returns the key of the compiled comprehensive report.
func ReportKey(sessionID string) string {
	return path.Join(outputsDir, sessionID+"_comprehensive_analysis.txt")
}

// QuestionsKey returns the key of the generated interview questions text.
func QuestionsKey(sessionID string) string {
	return path.Join(outputsDir, sessionID+"_questions.txt")
}

// EnhancedResumeKey returns the key of the enhanced resume JSON document.
func EnhancedResumeKey(sessionID string) string {
	return path.Join(outputsDir, sessionID+"_enhanced_cv.json")
}

// ReadArtifact loads a whole artifact from the store. A missing key yields
// *MissingArtifactError so callers can map it to a 404 naming the file.
func ReadArtifact(ctx context.Context, store object.Store, key string) (string, error) {
	ok, err := store.Exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("check artifact %s: %w", key, err)
	}
	if !ok {
		return "", &MissingArtifactError{Key: key}
	}
	rc, err := store.Open(ctx, key)
	if err != nil {
		return "", fmt.Errorf("open artifact %s: %w", key, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read artifact %s: %w", key, err)
	}
	return string(data), nil
}
