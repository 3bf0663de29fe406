package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/docfold/docfold/pkg/model"
	"github.com/docfold/docfold/pkg/port"
	"github.com/gorilla/mux"
)

type DBDocDelete struct {
	Base
	Design bool
}

func (s *DBDocDelete) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
	rev := r.URL.Query().Get("rev")

	doc, err := db.DeleteDocument(r.Context(), docID, rev)
	if errors.Is(err, port.ErrConflict) {
		WriteError(w, http.StatusConflict, err.Error())
		return
	} else if errors.Is(err, port.ErrNotFound) {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	} else if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DocResponse{ // nolint: errcheck
		Ok:  true,
		ID:  doc.ID,
		Rev: doc.Rev,
	})
}
