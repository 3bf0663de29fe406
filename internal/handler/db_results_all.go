package handler

import (
	"encoding/json"
	"net/http"
)

// DBResultsAll lists the result collections of the database.
type DBResultsAll struct {
	Base
}

func (s *DBResultsAll) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	db := Database{Base: s.Base}.Do(w, r)
	if db == nil {
		return
	}

	if _, ok := (Authenticator{Base: s.Base}.Do(w, r)); !ok {
		return
	}

	collections, err := db.ResultCollections(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(collections) // nolint: errcheck
}
