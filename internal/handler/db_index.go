package handler

import (
	"encoding/json"
	"net/http"
)

type DBIndex struct {
	Base
}

func (s *DBIndex) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	db := Database{Base: s.Base}.Do(w, r)
	if db == nil {
		return
	}

	if _, ok := (Authenticator{Base: s.Base}.Do(w, r)); !ok {
		return
	}

	stats, err := db.Stats(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	collections, err := db.ResultCollections(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := DBResponse{
		DbName:            db.Name(),
		DocCount:          stats.DocCount,
		ResultCollections: collections,
		Sizes: Sizes{
			File:     stats.FileSize,
			Active:   stats.Alloc,
			External: stats.InUse,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response) // nolint: errcheck
}

type DBResponse struct {
	DbName            string   `json:"db_name"`
	DocCount          uint64   `json:"doc_count"`
	ResultCollections []string `json:"result_collections"`
	Sizes             Sizes    `json:"sizes"`
}

type Sizes struct {
	File     uint64 `json:"file"`
	External uint64 `json:"external"`
	Active   uint64 `json:"active"`
}
