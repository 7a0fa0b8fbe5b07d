// grchub/knowledge/entry.go
package knowledge

import "fmt"

// Category partitions the knowledge base four ways. The empty string
// stands for "all categories" at API boundaries.
type Category string

const (
	CategoryRisks          Category = "risks"
	CategoryCompliance     Category = "compliance"
	CategoryRegulatory     Category = "regulatory"
	CategoryRecommendation Category = "recommendation"
)

func Categories() []Category {
	return []Category{CategoryRisks, CategoryCompliance, CategoryRegulatory, CategoryRecommendation}
}

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryRisks, CategoryCompliance, CategoryRegulatory, CategoryRecommendation:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// SeverityRank orders severities critical > high > medium > low.
// Unknown or empty severities rank lowest.
func SeverityRank(severity string) int {
	switch severity {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

const (
	StatusActive    = "active"
	StatusPending   = "pending"
	StatusMitigated = "mitigated"
	StatusResolved  = "resolved"
)

// Entry is one immutable knowledge base record. Optional fields are
// empty strings when absent.
type Entry struct {
	ID             string   `yaml:"id" json:"id"`
	Category       Category `yaml:"category" json:"category"`
	Title          string   `yaml:"title" json:"title"`
	Severity       string   `yaml:"severity,omitempty" json:"severity,omitempty"`
	Status         string   `yaml:"status,omitempty" json:"status,omitempty"`
	Description    string   `yaml:"description" json:"description"`
	Framework      string   `yaml:"framework,omitempty" json:"framework,omitempty"`
	Region         string   `yaml:"region,omitempty" json:"region,omitempty"`
	Recommendation string   `yaml:"recommendation,omitempty" json:"recommendation,omitempty"`
	LastUpdated    string   `yaml:"last_updated" json:"lastUpdated"`
}

func (e Entry) validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry missing id")
	}
	if _, err := ParseCategory(string(e.Category)); err != nil {
		return fmt.Errorf("entry %s: %w", e.ID, err)
	}
	if e.Severity != "" && SeverityRank(e.Severity) == 0 {
		return fmt.Errorf("entry %s: unknown severity %q", e.ID, e.Severity)
	}
	switch e.Status {
	case "", StatusActive, StatusPending, StatusMitigated, StatusResolved:
	default:
		return fmt.Errorf("entry %s: unknown status %q", e.ID, e.Status)
	}
	return nil
}
