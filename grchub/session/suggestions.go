// grchub/session/suggestions.go
package session

import "grchub/grchub/knowledge"

// suggestedQueries offers starter questions while the conversation is
// empty, keyed by the active category ("" = all).
var suggestedQueries = map[knowledge.Category][]string{
	"": {
		"What are the top critical risks?",
		"Show me all compliance gaps",
		"Summarize regulatory deadlines",
		"What are the priority recommendations?",
	},
	knowledge.CategoryRisks: {
		"List all critical and high severity risks",
		"What risks are currently active?",
		"Which risks have recommendations?",
		"Show vendor-related risks",
	},
	knowledge.CategoryCompliance: {
		"Which compliance items need immediate attention?",
		"Show GDPR compliance status",
		"List all SOC 2 findings",
		"What frameworks are we tracking?",
	},
	knowledge.CategoryRegulatory: {
		"What are the upcoming regulatory deadlines?",
		"Show EU regulations affecting us",
		"List US regulatory requirements",
		"What is the EU AI Act impact?",
	},
	knowledge.CategoryRecommendation: {
		"Prioritize recommendations by impact",
		"What is Zero Trust Architecture?",
		"Show automation recommendations",
		"Which recommendations reduce risk most?",
	},
}

// Suggestions returns the starter queries for the active category.
// Picking one is equivalent to typing it and submitting.
func (s *Session) Suggestions() []string {
	return suggestedQueries[s.Category()]
}
