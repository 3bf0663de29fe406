package handler

import (
	"encoding/json"
	"net/http"
)

type Index struct{}

func (s *Index) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	response := &Info{
		Docfold: "Welcome",
		Version: "0.1.0",
		Features: []string{
			"map_reduce",
			"search",
		},
		Vendor: Vendor{
			Name: "docfold",
		},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response) // nolint: errcheck
}

type Info struct {
	Docfold  string   `json:"docfold"`
	Version  string   `json:"version"`
	Features []string `json:"features"`
	Vendor   Vendor   `json:"vendor"`
}

type Vendor struct {
	Name string `json:"name"`
}
