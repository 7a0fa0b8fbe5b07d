// grchub/knowledge/store.go
package knowledge

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var defaultData []byte

// Store holds the knowledge base. Built once at boot, never mutated
// afterwards, so concurrent readers need no locking.
type Store struct {
	entries []Entry
}

func NewStore(entries []Entry) (*Store, error) {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if err := e.validate(); err != nil {
			return nil, err
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("duplicate entry id %s", e.ID)
		}
		seen[e.ID] = true
	}
	return &Store{entries: entries}, nil
}

// Load builds a store from the YAML file at path, or from the
// embedded data set when path is empty.
func Load(path string) (*Store, error) {
	data := defaultData
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read knowledge file: %w", err)
		}
		data = b
	}
	var doc struct {
		Entries []Entry `yaml:"entries"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse knowledge file: %w", err)
	}
	return NewStore(doc.Entries)
}

func (s *Store) Len() int {
	return len(s.entries)
}

// All returns every entry in native (insertion) order.
func (s *Store) All() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ByCategory returns the entries of one category, preserving native
// order. Empty result when nothing matches.
func (s *Store) ByCategory(c Category) []Entry {
	var out []Entry
	for _, e := range s.entries {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

// Search does a case-insensitive substring match against title,
// description, framework, recommendation and region. An empty query
// matches the whole store; substring-matching everything on "" is
// useless for the UI, so that is the intended reading.
func (s *Store) Search(query string) []Entry {
	q := strings.ToLower(query)
	var out []Entry
	for _, e := range s.entries {
		if strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.Description), q) ||
			(e.Framework != "" && strings.Contains(strings.ToLower(e.Framework), q)) ||
			(e.Recommendation != "" && strings.Contains(strings.ToLower(e.Recommendation), q)) ||
			(e.Region != "" && strings.Contains(strings.ToLower(e.Region), q)) {
			out = append(out, e)
		}
	}
	return out
}

// Counts reports how many entries each category holds.
func (s *Store) Counts() map[Category]int {
	counts := make(map[Category]int, 4)
	for _, e := range s.entries {
		counts[e.Category]++
	}
	return counts
}

// Stats is the dashboard header summary.
type Stats struct {
	Total        int              `json:"total"`
	Categories   map[Category]int `json:"categories"`
	ActiveRisks  int              `json:"activeRisks"`
	CriticalOpen int              `json:"criticalOpen"`
}

// Summarize derives the dashboard stats: per-category totals, active
// risk count, and critical entries not yet mitigated or resolved.
func (s *Store) Summarize() Stats {
	st := Stats{Total: len(s.entries), Categories: s.Counts()}
	for _, e := range s.entries {
		if e.Category == CategoryRisks && e.Status == StatusActive {
			st.ActiveRisks++
		}
		if e.Severity == SeverityCritical && e.Status != StatusMitigated && e.Status != StatusResolved {
			st.CriticalOpen++
		}
	}
	return st
}
