package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO sessions").
		WithArgs("abc123", "resume.pdf", 512, `["skills","experience"]`, `["skills","experience","integration"]`,
			StatusUploaded, "gpt-4o", "openai", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	err = repo.Create(context.Background(), Session{
		ID:             "abc123",
		SourceFileName: "resume.pdf",
		CharCount:      512,
		Structure:      []string{"skills", "experience"},
		PlannedPasses:  []string{"skills", "experience", "integration"},
		Status:         StatusUploaded,
		Model:          "gpt-4o",
		Provider:       "openai",
		CreatedAt:      now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPGRepoCreateRequiresID(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := &PGRepo{DB: db}
	if err := repo.Create(context.Background(), Session{}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	analyzed := now.Add(time.Minute)
	cols := []string{
		"id", "source_file_name", "char_count", "structure", "planned_passes",
		"status", "model", "provider", "analyzed_at", "questions_at", "enhanced_at",
		"created_at", "updated_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("abc123").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"abc123", "resume.pdf", 512, `["skills"]`, `["skills","integration"]`,
			StatusAnalyzed, "gpt-4o", "openai", analyzed, nil, nil, now, analyzed,
		))

	repo := &PGRepo{DB: db}
	got, err := repo.GetByID(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != "abc123" || got.Status != StatusAnalyzed {
		t.Errorf("unexpected session: %+v", got)
	}
	if len(got.Structure) != 1 || got.Structure[0] != "skills" {
		t.Errorf("unexpected structure: %v", got.Structure)
	}
	if len(got.PlannedPasses) != 2 {
		t.Errorf("unexpected planned passes: %v", got.PlannedPasses)
	}
	if got.AnalyzedAt == nil || !got.AnalyzedAt.Equal(analyzed) {
		t.Errorf("unexpected analyzedAt: %v", got.AnalyzedAt)
	}
	if got.QuestionsAt != nil || got.EnhancedAt != nil {
		t.Errorf("expected nil timestamps, got %v %v", got.QuestionsAt, got.EnhancedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	cols := []string{
		"id", "source_file_name", "char_count", "structure", "planned_passes",
		"status", "model", "provider", "analyzed_at", "questions_at", "enhanced_at",
		"created_at", "updated_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(cols))

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateAnalysis(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	at := time.Now().UTC()
	mock.ExpectExec("UPDATE sessions").
		WithArgs("abc123", `["skills"]`, `["skills","integration"]`, StatusAnalyzed, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	err = repo.UpdateAnalysis(context.Background(), "abc123", []string{"skills"}, []string{"skills", "integration"}, at)
	if err != nil {
		t.Fatalf("UpdateAnalysis: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPGRepoUpdateAnalysisNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	at := time.Now().UTC()
	mock.ExpectExec("UPDATE sessions").
		WithArgs("missing", `["skills"]`, `["integration"]`, StatusAnalyzed, at).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: db}
	err = repo.UpdateAnalysis(context.Background(), "missing", []string{"skills"}, []string{"integration"}, at)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoMarkQuestionsGenerated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	at := time.Now().UTC()
	mock.ExpectExec("UPDATE sessions").
		WithArgs("abc123", StatusQuestions, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	if err := repo.MarkQuestionsGenerated(context.Background(), "abc123", at); err != nil {
		t.Fatalf("MarkQuestionsGenerated: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPGRepoListRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	cols := []string{
		"id", "source_file_name", "char_count", "structure", "planned_passes",
		"status", "model", "provider", "analyzed_at", "questions_at", "enhanced_at",
		"created_at", "updated_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM sessions ORDER BY created_at DESC").
		WithArgs(2, 0).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("b", "b.pdf", 10, nil, nil, StatusUploaded, "gpt-4o", "openai", nil, nil, nil, now, now).
			AddRow("a", "a.pdf", 20, nil, nil, StatusUploaded, "gpt-4o", "openai", nil, nil, nil, now.Add(-time.Hour), now.Add(-time.Hour)))

	repo := &PGRepo{DB: db}
	got, err := repo.ListRecent(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("unexpected list: %+v", got)
	}
}
