package handler

import (
	"encoding/json"
	"net/http"

	"github.com/docfold/docfold/pkg/model"
	uuid "github.com/satori/go.uuid"
)

// DBDocPost stores a document under a generated id.
type DBDocPost struct {
	Base
}

func (s *DBDocPost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	db := Database{Base: s.Base}.Do(w, r)
	if db == nil {
		return
	}

	if _, ok := (Authenticator{Base: s.Base}.Do(w, r)); !ok {
		return
	}

	var data map[string]interface{}
	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	docID, ok := data["_id"].(string)
	if !ok {
		docID = uuid.NewV4().String()
		data["_id"] = docID
	}

	rev, err := db.PutDocument(r.Context(), &model.Document{
		ID:   docID,
		Data: data,
	})
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(DocResponse{ // nolint: errcheck
		Ok:  true,
		ID:  docID,
		Rev: rev,
	})
}
