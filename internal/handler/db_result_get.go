package handler

import (
	"encoding/json"
	"net/http"

	"github.com/docfold/docfold/pkg/model"
	"github.com/gorilla/mux"
)

// DBResultGet returns the rows of a result collection ordered by
// key.
type DBResultGet struct {
	Base
}

func (s *DBResultGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	db := Database{Base: s.Base}.Do(w, r)
	if db == nil {
		return
	}

	if _, ok := (Authenticator{Base: s.Base}.Do(w, r)); !ok {
		return
	}

	name := mux.Vars(r)["name"]
	options := r.URL.Query()
	opts := &model.IteratorOptions{
		Skip:  intOption("skip", 0, options),
		Limit: intOption("limit", 0, options),
	}

	docs, total, err := db.ResultDocs(r.Context(), name, opts)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := ResultResponse{
		TotalRows: total,
		Rows:      make([]ResultRow, len(docs)),
	}
	for i, doc := range docs {
		response.Rows[i].ID = doc.Key
		response.Rows[i].Value = doc.Value
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response) // nolint: errcheck
}

type ResultResponse struct {
	TotalRows int         `json:"total_rows"`
	Rows      []ResultRow `json:"rows"`
}

// ResultRow is the {_id, value} shape of a stored result.
type ResultRow struct {
	ID    interface{} `json:"_id"`
	Value interface{} `json:"value"`
}
