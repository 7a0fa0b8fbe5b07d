// grchub/knowledge/context.go
package knowledge

import (
	"fmt"
	"strings"
)

// Context renders the selected entries as the text block handed to
// the model, one pipe-delimited line per entry, a blank line between
// entries. c == "" selects the whole store. Deterministic: same store
// and category always produce the same bytes.
func (s *Store) Context(c Category) string {
	entries := s.entries
	if c != "" {
		entries = s.ByCategory(c)
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf(
			"[%s] %s | Category: %s | Severity: %s | Status: %s | Framework: %s | Region: %s | Description: %s | Recommendation: %s | Last Updated: %s",
			e.ID, e.Title, e.Category,
			orNA(e.Severity), orNA(e.Status), orNA(e.Framework), orNA(e.Region),
			e.Description, orNA(e.Recommendation), e.LastUpdated,
		))
	}
	return strings.Join(lines, "\n\n")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// SystemPrompt wraps the rendered context in the advisor instruction
// template sent as the model's system message.
func (s *Store) SystemPrompt(c Category) string {
	viewing := "The user is viewing all categories."
	if c != "" {
		viewing = fmt.Sprintf("The user is currently viewing the %q category.", string(c))
	}

	return fmt.Sprintf(`You are an expert GRC (Governance, Risk & Compliance) AI advisor. You help organizations manage risks, ensure compliance, navigate regulatory requirements, and provide strategic recommendations.

You have access to the following knowledge base data. When answering questions, you MUST reference specific entries from this data using their IDs (e.g., RSK-001, CMP-002) and present relevant information in a structured format.

%s

=== KNOWLEDGE BASE ===
%s
=== END KNOWLEDGE BASE ===

Guidelines:
1. Always reference specific knowledge base entries by their ID when relevant.
2. When presenting data, structure it clearly with entry IDs, titles, severity levels, and statuses.
3. Provide actionable recommendations based on the data.
4. If the user asks about something not in the knowledge base, say so clearly and provide general guidance.
5. For risk queries, prioritize by severity (critical > high > medium > low).
6. For compliance queries, highlight frameworks and deadlines.
7. For regulatory queries, include jurisdictional context.
8. For recommendation queries, provide implementation prioritization.
9. When returning multiple items, format them as a structured list with key details.
10. Always end with a brief actionable summary or next steps.`, viewing, s.Context(c))
}
