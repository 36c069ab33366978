package parsing

import (
	"strings"
	"testing"
)

func TestParseMarkdownSections(t *testing.T) {
	input := strings.Join([]string{
		"# Gap Analysis",
		"- Missing quantified achievements",
		"- No team size mentioned",
		"",
		"# Recommendations",
		"- Add metrics to each role",
		"- List certifications with dates",
		"",
		"# Interview Questions",
		"- How large was the team you led?",
	}, "\n")

	got := Parse(input)
	if got.Confidence != ConfidenceStructured {
		t.Fatalf("confidence = %q, want %q", got.Confidence, ConfidenceStructured)
	}
	if len(got.Gaps) != 2 {
		t.Errorf("gaps = %v", got.Gaps)
	}
	if len(got.Recommendations) != 2 {
		t.Errorf("recommendations = %v", got.Recommendations)
	}
	qs := got.Questions["Interview Questions"]
	if len(qs) != 1 || !strings.HasSuffix(qs[0], "?") {
		t.Errorf("questions = %v", got.Questions)
	}
	if got.RawResponse != input {
		t.Error("RawResponse must carry the verbatim input")
	}
}

func TestParseUppercaseHeaders(t *testing.T) {
	input := strings.Join([]string{
		"ATS COMPATIBILITY",
		"- Use standard section names",
		"",
		"SPECIAL CONSIDERATIONS",
		"- Career gap in 2021 needs framing",
	}, "\n")

	got := Parse(input)
	if got.Confidence != ConfidenceStructured {
		t.Fatalf("confidence = %q, want %q", got.Confidence, ConfidenceStructured)
	}
	if len(got.ATSNotes) != 1 {
		t.Errorf("atsNotes = %v", got.ATSNotes)
	}
	if len(got.SpecialConsiderations) != 1 {
		t.Errorf("specialConsiderations = %v", got.SpecialConsiderations)
	}
}

func TestParseOverviewKeyValues(t *testing.T) {
	input := strings.Join([]string{
		"## Overview",
		"Overall Quality: Strong presentation with weak quantification",
		"Target Fit: Mid-level backend roles",
		"",
		"## Gap Analysis",
		"- No metrics anywhere",
	}, "\n")

	got := Parse(input)
	if got.Confidence != ConfidenceStructured {
		t.Fatalf("confidence = %q, want %q", got.Confidence, ConfidenceStructured)
	}
	if got.Overview["Target Fit"] != "Mid-level backend roles" {
		t.Errorf("overview = %v", got.Overview)
	}
}

func TestParseFallbackMinesQuestionsAndScores(t *testing.T) {
	input := strings.Join([]string{
		"The resume is decent overall, rated 7/10 for clarity.",
		"What was the budget for the migration project?",
		"You should quantify the performance improvements.",
	}, "\n")

	got := Parse(input)
	if got.Confidence != ConfidencePartial {
		t.Fatalf("confidence = %q, want %q", got.Confidence, ConfidencePartial)
	}
	if len(got.Questions["General"]) != 1 {
		t.Errorf("questions = %v", got.Questions)
	}
	if len(got.Recommendations) != 1 {
		t.Errorf("recommendations = %v", got.Recommendations)
	}
	if len(got.Scores) != 1 || got.Scores[0].Value != 7 {
		t.Errorf("scores = %v", got.Scores)
	}
}

func TestParseNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"   \n\n  ",
		"just a single flat sentence with nothing to extract",
		"12/10 is out of range and skipped",
	}
	for _, input := range inputs {
		got := Parse(input)
		if got.RawResponse != input {
			t.Errorf("RawResponse altered for %q", input)
		}
		if got.Confidence == "" {
			t.Errorf("no confidence assigned for %q", input)
		}
	}
}

func TestParseRawWhenNothingExtractable(t *testing.T) {
	got := Parse("plain prose with no signals at all")
	if got.Confidence != ConfidenceRaw {
		t.Fatalf("confidence = %q, want %q", got.Confidence, ConfidenceRaw)
	}
}
