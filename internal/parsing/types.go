package parsing

// Confidence tags how much structure was recovered from a model response.
type Confidence string

const (
	// ConfidenceStructured means a header strategy matched and items were
	// extracted from recognizable sections.
	ConfidenceStructured Confidence = "structured"
	// ConfidencePartial means no section structure was found but the
	// unstructured fallback mined usable items from the raw text.
	ConfidencePartial Confidence = "partial"
	// ConfidenceRaw means nothing could be extracted; only the raw text is
	// available.
	ConfidenceRaw Confidence = "raw"
)

// Score is a "N/10" rating mined from the response, with the line it came
// from for context.
type Score struct {
	Context string `json:"context"`
	Value   int    `json:"value"`
}

// ParsedAnalysis is the best-effort structured view of a free-text analysis.
// RawResponse always carries the verbatim input regardless of confidence.
type ParsedAnalysis struct {
	Confidence            Confidence          `json:"confidence"`
	Overview              map[string]string   `json:"overview,omitempty"`
	Gaps                  []string            `json:"gaps,omitempty"`
	Questions             map[string][]string `json:"questions,omitempty"`
	Recommendations       []string            `json:"recommendations,omitempty"`
	ATSNotes              []string            `json:"atsNotes,omitempty"`
	SpecialConsiderations []string            `json:"specialConsiderations,omitempty"`
	Scores                []Score             `json:"scores,omitempty"`
	RawResponse           string              `json:"rawResponse"`
}

func (p *ParsedAnalysis) itemCount() int {
	n := len(p.Overview) + len(p.Gaps) + len(p.Recommendations) + len(p.ATSNotes) + len(p.SpecialConsiderations) + len(p.Scores)
	for _, qs := range p.Questions {
		n += len(qs)
	}
	return n
}
