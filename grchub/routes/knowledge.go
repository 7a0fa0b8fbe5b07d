// grchub/routes/knowledge.go
package routes

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"grchub/grchub/controllers"
)

func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			http.Error(w, err.Error(), status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(res)
	}
}

func KnowledgeRoutes(ctrl *controllers.KnowledgeController) chi.Router {
	r := chi.NewRouter()

	// All entries, optionally filtered by ?q= substring search
	r.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
		return ctrl.List(r.URL.Query().Get("q")), http.StatusOK, nil
	}))

	// Dashboard header summary
	r.Get("/stats", handleJSON(func(r *http.Request) (any, int, error) {
		return ctrl.Stats(), http.StatusOK, nil
	}))

	// Entries of one category
	r.Get("/{category}", handleJSON(func(r *http.Request) (any, int, error) {
		entries, err := ctrl.ListByCategory(chi.URLParam(r, "category"))
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		return entries, http.StatusOK, nil
	}))

	return r
}
