package handler

import (
	"encoding/json"
	"net/http"

	"github.com/docfold/docfold/pkg/model"
)

type DBDocsAll struct {
	Base
}

func (s *DBDocsAll) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	db := Database{Base: s.Base}.Do(w, r)
	if db == nil {
		return
	}

	if _, ok := (Authenticator{Base: s.Base}.Do(w, r)); !ok {
		return
	}

	options := r.URL.Query()
	opts := &model.IteratorOptions{
		Skip:        intOption("skip", 0, options),
		Limit:       intOption("limit", 0, options),
		SkipDeleted: true,
	}
	if v := options.Get("startkey"); v != "" {
		opts.StartKey = []byte(v)
	}
	if v := options.Get("endkey"); v != "" {
		opts.EndKey = []byte(v)
	}
	includeDocs := boolOption("include_docs", false, options)

	docs, total, err := db.AllDocs(r.Context(), opts)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := RowsResponse{
		TotalRows: total,
		Rows:      make([]Row, len(docs)),
	}
	for i, doc := range docs {
		response.Rows[i].ID = doc.ID
		response.Rows[i].Key = doc.ID
		response.Rows[i].Value = RowValue{Rev: doc.Rev}
		if includeDocs {
			response.Rows[i].Doc = doc.Data
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response) // nolint: errcheck
}

type RowsResponse struct {
	TotalRows int   `json:"total_rows"`
	Offset    int   `json:"offset"`
	Rows      []Row `json:"rows"`
}

type RowValue struct {
	Rev string `json:"rev"`
}

type Row struct {
	ID    string                 `json:"id,omitempty"`
	Key   interface{}            `json:"key,omitempty"`
	Value interface{}            `json:"value,omitempty"`
	Doc   map[string]interface{} `json:"doc,omitempty"`
}
