// grchub/controllers/knowledge.go
package controllers

import (
	"grchub/grchub/knowledge"
)

type KnowledgeController struct {
	store *knowledge.Store
}

func NewKnowledgeController(store *knowledge.Store) *KnowledgeController {
	return &KnowledgeController{store: store}
}

// List returns the whole store, or a substring search when query is
// non-empty.
func (c *KnowledgeController) List(query string) []knowledge.Entry {
	if query == "" {
		return c.store.All()
	}
	return c.store.Search(query)
}

func (c *KnowledgeController) ListByCategory(raw string) ([]knowledge.Entry, error) {
	category, err := knowledge.ParseCategory(raw)
	if err != nil {
		return nil, err
	}
	return c.store.ByCategory(category), nil
}

func (c *KnowledgeController) Stats() knowledge.Stats {
	return c.store.Summarize()
}
