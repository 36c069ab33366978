package analysis

import (
	"context"
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

const (
	maxAnalysisTokens = 15000

	// Stand-in for prior analyses when only the integration pass runs.
	noPriorAnalyses = "No section analyses were produced for this resume."
)

// Service runs the adaptive multi-pass analysis pipeline.
type Service struct {
	Store    object.Store
	Repo     sessions.Repo
	LLM      llm.Client
	Provider string
	Model    string
}

// Run executes the full pipeline for a session: detect structure, plan
// passes, run them in order, persist each output, compile and persist the
// final report. Any completion error aborts the run; no retry, no partial
// salvage.
func (s *Service) Run(ctx context.Context, sessionID string) (Result, error) {
	text, err := sessions.ReadArtifact(ctx, s.Store, sessions.ExtractedTextKey(sessionID))
	if err != nil {
		return Result{}, err
	}
	text = strings.TrimSpace(text)

	flags := DetectStructure(text)
	passes := PlanPasses(flags)
	telemetry.Info("analysis.pipeline.start", map[string]any{
		"sessionId": sessionID,
		"structure": flags.DetectedSections(),
		"passes":    passes,
	})
	metrics.IncPipelineStarted()

	results := make([]PassResult, 0, len(passes))
	filesCreated := make([]string, 0, len(passes)+1)
	accumulated := ""

	for _, pass := range passes {
		template, ok := PromptTemplate(pass)
		if !ok {
			metrics.IncPipelineFailed()
			return Result{}, fmt.Errorf("unknown analysis pass %q", pass)
		}

		prompt := template + "\n\nCV CONTENT:\n" + text
		if pass == PassIntegration {
			prior := accumulated
			if prior == "" {
				prior = noPriorAnalyses
			}
			prompt += "\n\nPREVIOUS ANALYSES:\n" + prior
		}

		start := time.Now()
		output, err := s.LLM.Complete(ctx, llm.Request{
			Prompt:          prompt,
			MaxOutputTokens: maxAnalysisTokens,
		})
		if err != nil {
			metrics.IncPipelineFailed()
			telemetry.Error("analysis.pass.failed", map[string]any{
				"sessionId": sessionID,
				"pass":      pass,
				"error":     err.Error(),
			})
			return Result{}, fmt.Errorf("analysis pass %s: %w", pass, err)
		}
		output = strings.TrimSpace(output)
		metrics.ObservePassDurationMs(float64(time.Since(start).Milliseconds()))
		metrics.IncPassCompleted()

		passKey := sessions.PassOutputKey(sessionID, pass)
		if _, err := s.Store.Save(ctx, passKey, "text/plain; charset=utf-8", strings.NewReader(output)); err != nil {
			metrics.IncPipelineFailed()
			return Result{}, fmt.Errorf("save pass output %s: %w", passKey, err)
		}

		results = append(results, PassResult{Pass: pass, Output: output})
		filesCreated = append(filesCreated, passKey)
		accumulated += "\n\n" + strings.ToUpper(pass) + ":\n" + output
	}

	now := time.Now().UTC()
	report := CompileReport(sessionID, now, results, flags)
	reportKey := sessions.ReportKey(sessionID)
	if _, err := s.Store.Save(ctx, reportKey, "text/plain; charset=utf-8", strings.NewReader(report)); err != nil {
		metrics.IncPipelineFailed()
		return Result{}, fmt.Errorf("save report %s: %w", reportKey, err)
	}
	filesCreated = append(filesCreated, reportKey)

	if err := s.Repo.UpdateAnalysis(ctx, sessionID, flags.DetectedSections(), passes, now); err != nil {
		// Files are the source of truth; a missing metadata row is not fatal.
		if !errors.Is(err, sessions.ErrNotFound) {
			metrics.IncPipelineFailed()
			return Result{}, fmt.Errorf("update session %s: %w", sessionID, err)
		}
		telemetry.Warn("analysis.session.missing", map[string]any{"sessionId": sessionID})
	}

	metrics.IncPipelineCompleted()
	telemetry.Info("analysis.pipeline.complete", map[string]any{
		"sessionId": sessionID,
		"passes":    len(results),
	})

	return Result{
		SessionID:    sessionID,
		Structure:    flags,
		Passes:       passes,
		Report:       report,
		Individual:   results,
		FilesCreated: filesCreated,
	}, nil
}

// Report returns the compiled comprehensive report for a session.
func (s *Service) Report(ctx context.Context, sessionID string) (string, error) {
	return sessions.ReadArtifact(ctx, s.Store, sessions.ReportKey(sessionID))
}
