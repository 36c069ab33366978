package analysis

import (
	"fmt"
	"strings"
	"time"
)

const (
	sectionRule   = "================================================================================"
	closingMarker = "END OF COMPREHENSIVE ANALYSIS"
)

// CompileReport assembles the final comprehensive report from the completed
// pass outputs, in execution order. Pure function; the caller persists it.
func CompileReport(sessionID string, now time.Time, passes []PassResult, flags StructureFlags) string {
	var b strings.Builder

	sections := flags.DetectedSections()
	titled := make([]string, len(sections))
	for i, s := range sections {
		titled[i] = titleCase(s)
	}

	fmt.Fprintf(&b, "COMPREHENSIVE CV ANALYSIS REPORT\n")
	fmt.Fprintf(&b, "Session ID: %s\n", sessionID)
	fmt.Fprintf(&b, "Analysis Date: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "CV Structure Detected: %s\n", strings.Join(titled, ", "))
	fmt.Fprintf(&b, "Analysis Passes Completed: %d\n", len(passes))
	fmt.Fprintf(&b, "\n%s\n", sectionRule)

	for _, pass := range passes {
		fmt.Fprintf(&b, "\n%s\n%s\n%s\n", SectionTitle(pass.Pass), sectionRule, pass.Output)
	}

	fmt.Fprintf(&b, "\n%s\n%s\n%s\n", sectionRule, closingMarker, sectionRule)
	return b.String()
}

// SectionTitle turns a pass name into its uppercased report heading,
// e.g. "skills_analysis" -> "SKILLS ANALYSIS".
func SectionTitle(pass string) string {
	return strings.ToUpper(strings.ReplaceAll(pass, "_", " "))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
