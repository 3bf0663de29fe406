package handler

import (
	"encoding/json"
	"net/http"

	"github.com/docfold/docfold/internal/controller"
	"github.com/docfold/docfold/pkg/model"
	"github.com/mitchellh/mapstructure"
)

// DBMapReduce runs a single job against the database and replaces
// the output collection with the folded rows.
type DBMapReduce struct {
	Base
}

func (s *DBMapReduce) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	db := Database{Base: s.Base}.Do(w, r)
	if db == nil {
		return
	}

	if _, ok := (Authenticator{Base: s.Base}.Do(w, r)); !ok {
		return
	}

	var def map[string]interface{}
	err := json.NewDecoder(r.Body).Decode(&def)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var job model.MapReduceJob
	err = mapstructure.Decode(def, &job)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if job.Out == "" {
		job.Out = job.Name
	}

	// an invalid job is a bad request, not a server failure
	err = job.Normalize()
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if job.Engine == "mongodb" {
		s.runRemote(w, r, &job)
		return
	}

	stats, err := controller.MapReduce{DB: db, Job: &job}.Run(r.Context(), nil)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MapReduceResponse{ // nolint: errcheck
		Ok:      true,
		Result:  job.Out,
		Input:   stats.Input,
		Emitted: stats.Emitted,
		Output:  stats.Output,
	})
}

func (s *DBMapReduce) runRemote(w http.ResponseWriter, r *http.Request, job *model.MapReduceJob) {
	if s.Mongo == nil {
		WriteError(w, http.StatusBadRequest, "no mongodb deployment configured")
		return
	}

	res, err := s.Mongo.Run(r.Context(), job)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MapReduceResponse{ // nolint: errcheck
		Ok:      true,
		Result:  res.Collection,
		Input:   res.Input,
		Emitted: res.Emitted,
		Output:  res.Output,
	})
}

type MapReduceResponse struct {
	Ok      bool   `json:"ok"`
	Result  string `json:"result"`
	Input   int    `json:"input"`
	Emitted int    `json:"emitted"`
	Output  int    `json:"output"`
}
