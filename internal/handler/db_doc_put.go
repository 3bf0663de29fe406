package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/docfold/docfold/pkg/model"
	"github.com/docfold/docfold/pkg/port"
	"github.com/gorilla/mux"
)

type DBDocPut struct {
	Base
	Design bool
}

func (s *DBDocPut) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	docID := mux.Vars(r)["docid"]
	if s.Design {
		docID = model.DesignDocPrefix + docID
	}
	data["_id"] = docID

	rev, err := db.PutDocument(r.Context(), &model.Document{
		ID:      docID,
		Data:    data,
		Deleted: data["_deleted"] == true,
	})
	if errors.Is(err, port.ErrConflict) {
		WriteError(w, http.StatusConflict, err.Error())
		return
	}
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

type DocResponse struct {
	Ok  bool   `json:"ok"`
	ID  string `json:"id"`
	Rev string `json:"rev"`
}
