package workflow

import "sort"

// Phase is one step in a workflow, with a checklist the persona walks the
// user through.
type Phase struct {
	ID               string
	Name             string
	Description      string
	Checklist        []string
	NextPhaseTrigger string
}

// catalog is the static set of workflow types. Data, not code: a workflow is
// fully described by its ordered phases.
var catalog = map[string][]Phase{
	"code_optimization": {
		{
			ID:          "analysis",
			Name:        "Performance Analysis",
			Description: "Understand where the time actually goes before touching anything",
			Checklist: []string{
				"Reproduce the slow path with a measurable benchmark",
				"Profile CPU and allocations",
				"Identify the top three hotspots",
			},
			NextPhaseTrigger: "hotspots identified",
		},
		{
			ID:          "optimization",
			Name:        "Targeted Optimization",
			Description: "Change one hotspot at a time, measuring after each change",
			Checklist: []string{
				"Pick the highest-impact hotspot",
				"Apply the smallest change that addresses it",
				"Re-run the benchmark and record the delta",
			},
			NextPhaseTrigger: "benchmark improved",
		},
		{
			ID:          "validation",
			Name:        "Validation",
			Description: "Confirm correctness and lock in the gains",
			Checklist: []string{
				"Run the full test suite",
				"Compare before/after benchmarks",
				"Document the optimization and its trade-offs",
			},
		},
	},
	"feature_design": {
		{
			ID:          "requirements",
			Name:        "Requirements",
			Description: "Pin down what the feature must and must not do",
			Checklist: []string{
				"Write the user-facing behavior as scenarios",
				"List explicit non-goals",
				"Identify affected components",
			},
		},
		{
			ID:          "design",
			Name:        "Design",
			Description: "Shape the API and data model",
			Checklist: []string{
				"Sketch the public API",
				"Decide data ownership and lifetimes",
				"Note failure modes and edge cases",
			},
		},
		{
			ID:          "prototype",
			Name:        "Prototype",
			Description: "Prove the risky parts with throwaway code",
			Checklist: []string{
				"Build the narrowest end-to-end slice",
				"Validate the design against real data",
			},
		},
		{
			ID:          "review",
			Name:        "Review",
			Description: "Get eyes on the design before committing",
			Checklist: []string{
				"Walk a teammate through the design",
				"Record open questions and decisions",
			},
		},
	},
	"incident_review": {
		{
			ID:          "timeline",
			Name:        "Timeline",
			Description: "Establish what happened, when",
			Checklist: []string{
				"Collect logs, alerts, and deploy history",
				"Write the minute-by-minute timeline",
			},
		},
		{
			ID:          "root_cause",
			Name:        "Root Cause",
			Description: "Find the mechanism, not a scapegoat",
			Checklist: []string{
				"Trace the failure back through contributing causes",
				"Identify which safeguards were missing or bypassed",
			},
		},
		{
			ID:          "actions",
			Name:        "Follow-up Actions",
			Description: "Turn findings into tracked work",
			Checklist: []string{
				"File remediation items with owners",
				"Share the writeup with the team",
			},
		},
	},
	"dependency_upgrade": {
		{
			ID:          "audit",
			Name:        "Audit",
			Description: "Know what you are upgrading and why",
			Checklist: []string{
				"List outdated dependencies and their changelogs",
				"Flag breaking changes and security fixes",
			},
		},
		{
			ID:          "upgrade",
			Name:        "Upgrade",
			Description: "Apply upgrades in reviewable batches",
			Checklist: []string{
				"Upgrade one major dependency per change",
				"Fix compile and test fallout as you go",
			},
		},
		{
			ID:          "verify",
			Name:        "Verify",
			Description: "Confirm nothing regressed",
			Checklist: []string{
				"Run the full test suite and smoke tests",
				"Watch error rates after rollout",
			},
		},
	},
}

// Types returns the catalog's workflow type names, sorted.
func Types() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Phases returns a copy of the phase list for a workflow type.
func Phases(workflowType string) ([]Phase, bool) {
	phases, ok := catalog[workflowType]
	if !ok {
		return nil, false
	}
	out := make([]Phase, len(phases))
	copy(out, phases)
	return out, true
}
