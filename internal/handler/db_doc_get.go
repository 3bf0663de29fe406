package handler

import (
	"encoding/json"
	"net/http"

	"github.com/docfold/docfold/pkg/model"
	"github.com/gorilla/mux"
)

type DBDocGet struct {
	Base
	Design bool
}

func (s *DBDocGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	db := Database{Base: s.Base}.Do(w, r)
	if db == nil {
		return
	}

	if _, ok := (Authenticator{Base: s.Base}.Do(w, r)); !ok {
		return
	}

	docID := mux.Vars(r)["docid"]
	if s.Design {
		docID = model.DesignDocPrefix + docID
	}

	doc, err := db.GetDocument(r.Context(), docID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if doc == nil {
		WriteError(w, http.StatusNotFound, "missing")
		return
	}

	if boolOption("local_seq", false, r.URL.Query()) {
		doc.Data["_local_seq"] = doc.LocalSeq
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc.Data) // nolint: errcheck
}
