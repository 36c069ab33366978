package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"cv-suite/internal/llm"
	"cv-suite/internal/sessions"
	local "cv-suite/internal/shared/storage/object/local"
)

type stubLLM struct {
	calls []llm.Request
	reply func(llm.Request) (string, error)
}

func (s *stubLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	s.calls = append(s.calls, req)
	if s.reply != nil {
		return s.reply(req)
	}
	return "ENHANCED RESUME TEXT", nil
}

func TestFormatQA(t *testing.T) {
	got := FormatQA([]QA{
		{Question: "How big was the team?", Answer: "Six engineers"},
		{Question: "What was the budget?", Answer: ""},
		{Question: "Which metrics improved?", Answer: "p99 latency, by 40%"},
	})

	for _, want := range []string{
		"DETAILED QUESTION-ANSWER RESPONSES:",
		"Q1: How big was the team?",
		"A1: Six engineers",
		"Q2: What was the budget?",
		"A2: ",
		"Q3: Which metrics improved?",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("formatted QA missing %q:\n%s", want, got)
		}
	}
}

func TestGenerateWithInlineInputs(t *testing.T) {
	store := local.New(t.TempDir())
	repo := sessions.NewMemoryRepo()
	client := &stubLLM{}
	svc := &Service{Store: store, Repo: repo, LLM: client, Model: "o1-mini"}

	doc, err := svc.Generate(context.Background(), Input{
		CVText:       "original cv text",
		AnalysisText: "analysis text",
		QA:           []QA{{Question: "Team size?", Answer: "6"}},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if doc.SessionID == "" {
		t.Error("expected a generated session id")
	}
	if doc.EnhancedResume != "ENHANCED RESUME TEXT" {
		t.Errorf("enhancedResume = %q", doc.EnhancedResume)
	}

	if len(client.calls) != 1 {
		t.Fatalf("expected one completion call, got %d", len(client.calls))
	}
	prompt := client.calls[0].Prompt
	for _, want := range []string{
		"ORIGINAL CV:\noriginal cv text",
		"COMPREHENSIVE ANALYSIS:\nanalysis text",
		"Q1: Team size?",
		"A1: 6",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if client.calls[0].MaxOutputTokens != maxResumeTokens {
		t.Errorf("maxOutputTokens = %d, want %d", client.calls[0].MaxOutputTokens, maxResumeTokens)
	}

	// Persisted document round-trips.
	raw, err := sessions.ReadArtifact(context.Background(), store, sessions.EnhancedResumeKey(doc.SessionID))
	if err != nil {
		t.Fatalf("read enhanced resume: %v", err)
	}
	var stored Document
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("unmarshal stored document: %v", err)
	}
	if stored.EnhancedResume != doc.EnhancedResume || stored.SessionID != doc.SessionID {
		t.Errorf("stored document differs: %+v", stored)
	}
	if len(stored.Questions) != 1 || stored.Questions[0].Answer != "6" {
		t.Errorf("stored questions = %+v", stored.Questions)
	}
}

func TestGenerateLoadsSessionArtifacts(t *testing.T) {
	store := local.New(t.TempDir())
	repo := sessions.NewMemoryRepo()
	client := &stubLLM{}
	svc := &Service{Store: store, Repo: repo, LLM: client, Model: "o1-mini"}

	ctx := context.Background()
	if err := repo.Create(ctx, sessions.Session{ID: "s1", Status: sessions.StatusQuestions}); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	if _, err := store.Save(ctx, sessions.ExtractedTextKey("s1"), "text/plain", strings.NewReader("cv from store")); err != nil {
		t.Fatalf("seed cv: %v", err)
	}
	if _, err := store.Save(ctx, sessions.ReportKey("s1"), "text/plain", strings.NewReader("report from store")); err != nil {
		t.Fatalf("seed report: %v", err)
	}

	doc, err := svc.Generate(ctx, Input{SessionID: "s1"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	prompt := client.calls[0].Prompt
	if !strings.Contains(prompt, "cv from store") || !strings.Contains(prompt, "report from store") {
		t.Error("prompt did not use stored artifacts")
	}
	if doc.SessionID != "s1" {
		t.Errorf("sessionId = %q", doc.SessionID)
	}

	session, err := repo.GetByID(ctx, "s1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if session.Status != sessions.StatusEnhanced {
		t.Errorf("status = %q, want %q", session.Status, sessions.StatusEnhanced)
	}
}

func TestGenerateMissingArtifacts(t *testing.T) {
	store := local.New(t.TempDir())
	svc := &Service{Store: store, Repo: sessions.NewMemoryRepo(), LLM: &stubLLM{}}

	_, err := svc.Generate(context.Background(), Input{SessionID: "ghost"})
	var missing *sessions.MissingArtifactError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingArtifactError, got %v", err)
	}
}

func TestGenerateCompletionError(t *testing.T) {
	store := local.New(t.TempDir())
	boom := errors.New("completion failed")
	client := &stubLLM{reply: func(llm.Request) (string, error) { return "", boom }}
	svc := &Service{Store: store, Repo: sessions.NewMemoryRepo(), LLM: client}

	_, err := svc.Generate(context.Background(), Input{CVText: "cv", AnalysisText: "analysis"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped completion error, got %v", err)
	}
}
