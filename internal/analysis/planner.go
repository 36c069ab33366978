package analysis

// PlanPasses maps detected structure to the ordered list of analysis passes.
// The integration pass always runs last, even when no section was detected.
func PlanPasses(flags StructureFlags) []string {
	passes := []string{}
	if flags.HasSkills {
		passes = append(passes, PassSkills)
	}
	if flags.HasExperience {
		passes = append(passes, PassExperience)
	}
	if flags.HasProjects {
		passes = append(passes, PassProjects)
	}
	if flags.HasEducation || flags.HasCertifications {
		passes = append(passes, PassEducation)
	}
	return append(passes, PassIntegration)
}
