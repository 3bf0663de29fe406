package handler

import (
	"encoding/json"
	"net/http"
)

// DBSearch runs a full text query against the database index.
type DBSearch struct {
	Base
}

func (s *DBSearch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	db := Database{Base: s.Base}.Do(w, r)
	if db == nil {
		return
	}

	if _, ok := (Authenticator{Base: s.Base}.Do(w, r)); !ok {
		return
	}

	options := r.URL.Query()
	query := options.Get("q")
	if query == "" {
		WriteError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	limit := intOption("limit", 25, options)

	hits, total, err := db.Search(r.Context(), query, limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := SearchResponse{
		TotalRows: total,
		Rows:      make([]SearchRow, len(hits)),
	}
	for i, hit := range hits {
		response.Rows[i].ID = hit.ID
		response.Rows[i].Score = hit.Score
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response) // nolint: errcheck
}

type SearchResponse struct {
	TotalRows uint64      `json:"total_rows"`
	Rows      []SearchRow `json:"rows"`
}

type SearchRow struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}
