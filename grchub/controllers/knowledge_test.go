package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeList(t *testing.T) {
	ctrl := NewKnowledgeController(chatTestStore(t))

	all := ctrl.List("")
	assert.Len(t, all, 2)

	hits := ctrl.List("gdpr")
	require.Len(t, hits, 1)
	assert.Equal(t, "CMP-001", hits[0].ID)
}

func TestKnowledgeListByCategory(t *testing.T) {
	ctrl := NewKnowledgeController(chatTestStore(t))

	risks, err := ctrl.ListByCategory("risks")
	require.NoError(t, err)
	require.Len(t, risks, 1)
	assert.Equal(t, "RSK-001", risks[0].ID)

	_, err = ctrl.ListByCategory("audits")
	assert.Error(t, err)
}

func TestKnowledgeStats(t *testing.T) {
	ctrl := NewKnowledgeController(chatTestStore(t))

	stats := ctrl.Stats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ActiveRisks)
	assert.Equal(t, 1, stats.CriticalOpen)
}
