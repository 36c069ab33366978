package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

// section is a titled slice of the response produced by a header strategy.
type section struct {
	Title string
	Body  string
}

// strategy attempts to split a response into titled sections. It reports
// false when it finds fewer than two.
type strategy func(text string) ([]section, bool)

// Strategies run in order; the first one producing at least two sections
// wins. Order matters: markdown headers are the most reliable signal.
var strategies = []strategy{
	splitByMarkdownHeaders,
	splitByUppercaseHeaders,
	splitByNumberedHeaders,
}

var (
	markdownHeaderRe  = regexp.MustCompile(`^#{1,4}\s+(.+?)\s*$`)
	uppercaseHeaderRe = regexp.MustCompile(`^([A-Z][A-Z0-9 \-/&()]{3,}):?\s*$`)
	numberedHeaderRe  = regexp.MustCompile(`^(?:\d+[.)]|[IVX]+\.)\s+([A-Z].{2,60}?):?\s*$`)
	bulletRe          = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s+(.+)$`)
	keyValueRe        = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 /&-]{1,50}):\s+(.+)$`)
	scoreRe           = regexp.MustCompile(`\b(\d{1,2})\s*/\s*10\b`)
)

// Parse recovers whatever structure it can from a model response. It never
// fails: the result always carries the verbatim input and a confidence tag.
func Parse(text string) ParsedAnalysis {
	result := ParsedAnalysis{RawResponse: text}

	for _, s := range strategies {
		sections, ok := s(text)
		if !ok {
			continue
		}
		for _, sec := range sections {
			dispatchSection(&result, sec)
		}
		if result.itemCount() > 0 {
			result.Confidence = ConfidenceStructured
			return result
		}
		// Sections matched but carried nothing usable; wipe and fall through.
		result = ParsedAnalysis{RawResponse: text}
		break
	}

	mineUnstructured(&result, text)
	if result.itemCount() > 0 {
		result.Confidence = ConfidencePartial
	} else {
		result.Confidence = ConfidenceRaw
	}
	return result
}

func splitByMarkdownHeaders(text string) ([]section, bool) {
	return splitByHeader(text, markdownHeaderRe)
}

func splitByUppercaseHeaders(text string) ([]section, bool) {
	return splitByHeader(text, uppercaseHeaderRe)
}

func splitByNumberedHeaders(text string) ([]section, bool) {
	return splitByHeader(text, numberedHeaderRe)
}

func splitByHeader(text string, header *regexp.Regexp) ([]section, bool) {
	var sections []section
	var current *section
	var body strings.Builder

	flush := func() {
		if current != nil {
			current.Body = body.String()
			sections = append(sections, *current)
		}
		body.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if m := header.FindStringSubmatch(trimmed); m != nil {
			flush()
			current = &section{Title: strings.TrimSpace(m[1])}
			continue
		}
		if current != nil {
			body.WriteString(line)
			body.WriteString("\n")
		}
	}
	flush()

	if len(sections) < 2 {
		return nil, false
	}
	return sections, true
}

func dispatchSection(result *ParsedAnalysis, sec section) {
	title := strings.ToLower(sec.Title)
	items := extractItems(sec.Body)

	switch {
	case strings.Contains(title, "gap"):
		result.Gaps = append(result.Gaps, items...)
	case strings.Contains(title, "question"):
		if len(items) > 0 {
			if result.Questions == nil {
				result.Questions = map[string][]string{}
			}
			result.Questions[sec.Title] = append(result.Questions[sec.Title], items...)
		}
	case strings.Contains(title, "recommend"):
		result.Recommendations = append(result.Recommendations, items...)
	case strings.Contains(title, "ats"):
		result.ATSNotes = append(result.ATSNotes, items...)
	case strings.Contains(title, "special"):
		result.SpecialConsiderations = append(result.SpecialConsiderations, items...)
	default:
		for _, line := range strings.Split(sec.Body, "\n") {
			trimmed := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*• "))
			if m := keyValueRe.FindStringSubmatch(trimmed); m != nil {
				if result.Overview == nil {
					result.Overview = map[string]string{}
				}
				result.Overview[strings.TrimSpace(m[1])] = strings.TrimSpace(m[2])
			}
		}
	}

	mineScores(result, sec.Body)
}

// extractItems pulls list items from a section body: bullet and numbered
// lines when present, otherwise every non-empty line.
func extractItems(body string) []string {
	var bullets, plain []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := bulletRe.FindStringSubmatch(trimmed); m != nil {
			bullets = append(bullets, strings.TrimSpace(m[1]))
			continue
		}
		plain = append(plain, trimmed)
	}
	if len(bullets) > 0 {
		return bullets
	}
	return plain
}

// mineUnstructured scavenges question lines, recommendation sentences, and
// scores from text with no recognizable section structure.
func mineUnstructured(result *ParsedAnalysis, text string) {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := bulletRe.FindStringSubmatch(trimmed); m != nil {
			trimmed = strings.TrimSpace(m[1])
		}
		if strings.HasSuffix(trimmed, "?") {
			if result.Questions == nil {
				result.Questions = map[string][]string{}
			}
			result.Questions["General"] = append(result.Questions["General"], trimmed)
			continue
		}
		lower := strings.ToLower(trimmed)
		if strings.Contains(lower, "recommend") || strings.Contains(lower, "should") {
			result.Recommendations = append(result.Recommendations, trimmed)
		}
	}
	mineScores(result, text)
}

func mineScores(result *ParsedAnalysis, text string) {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, m := range scoreRe.FindAllStringSubmatch(trimmed, -1) {
			value, err := strconv.Atoi(m[1])
			if err != nil || value > 10 {
				continue
			}
			result.Scores = append(result.Scores, Score{Context: trimmed, Value: value})
		}
	}
}
