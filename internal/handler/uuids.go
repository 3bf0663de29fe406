package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	uuid "github.com/satori/go.uuid"
)

type UUIDs struct{}

func (s *UUIDs) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil || count < 1 {
		count = 1
	}

	response := &UUIDsResponse{
		Uuids: make([]string, count),
	}
	for i := 0; i < count; i++ {
		response.Uuids[i] = uuid.NewV4().String()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response) // nolint: errcheck
}

type UUIDsResponse struct {
	Uuids []string `json:"uuids"`
}
