package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grchub/grchub/controllers"
	"grchub/grchub/knowledge"
)

func knowledgeServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := knowledge.Load("")
	require.NoError(t, err)
	srv := httptest.NewServer(KnowledgeRoutes(controllers.NewKnowledgeController(store)))
	t.Cleanup(srv.Close)
	return srv
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestKnowledgeEndpointListsAll(t *testing.T) {
	srv := knowledgeServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []knowledge.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	assert.Len(t, entries, 20)
}

func TestKnowledgeEndpointSearch(t *testing.T) {
	srv := knowledgeServer(t)

	resp, err := http.Get(srv.URL + "/?q=zero+trust")
	require.NoError(t, err)
	defer resp.Body.Close()

	var entries []knowledge.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
	}
}

func TestKnowledgeEndpointByCategory(t *testing.T) {
	srv := knowledgeServer(t)

	resp, err := http.Get(srv.URL + "/regulatory")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []knowledge.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 5)
	for _, e := range entries {
		assert.Equal(t, knowledge.CategoryRegulatory, e.Category)
	}
}

func TestKnowledgeEndpointUnknownCategory(t *testing.T) {
	srv := knowledgeServer(t)

	resp, err := http.Get(srv.URL + "/audits")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestKnowledgeEndpointStats(t *testing.T) {
	srv := knowledgeServer(t)

	resp, err := http.Get(srv.URL + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats knowledge.Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 20, stats.Total)
	assert.Equal(t, 5, stats.Categories[knowledge.CategoryRisks])
}
