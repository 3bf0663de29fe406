package handler

import (
	"github.com/docfold/docfold/internal/adapter/mongodb"
	"github.com/docfold/docfold/internal/adapter/storage"
	"github.com/docfold/docfold/pkg/model"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

type Router struct {
	Storage      *storage.Storage
	SessionStore sessions.Store
	Admins       model.AdminUsers
	Mongo        *mongodb.Runner
}

func (router Router) Build(r *mux.Router) error {
	b := Base{
		Storage:      router.Storage,
		SessionStore: router.SessionStore,
		Admins:       router.Admins,
		Mongo:        router.Mongo,
	}

	r.Methods("GET").Path("/_all_dbs").Handler(&DBAll{Base: b})
	r.Methods("GET").Path("/_uuids").Handler(&UUIDs{})
	r.Methods("GET").Path("/_active_tasks").Handler(&ActiveTasks{Base: b})

	r.Methods("GET").Path("/_session").Handler(&SessionGet{Base: b})
	r.Methods("POST").Path("/_session").Handler(&SessionPost{Base: b})
	r.Methods("DELETE").Path("/_session").Handler(&SessionDelete{Base: b})

	r.Methods("GET").Path("/{db}/_all_docs").Handler(&DBDocsAll{Base: b})
	r.Methods("GET").Path("/{db}/_search").Handler(&DBSearch{Base: b})

	r.Methods("POST").Path("/{db}/_map_reduce").Handler(&DBMapReduce{Base: b})
	r.Methods("GET").Path("/{db}/_result").Handler(&DBResultsAll{Base: b})
	r.Methods("GET").Path("/{db}/_result/{name}").Handler(&DBResultGet{Base: b})
	r.Methods("DELETE").Path("/{db}/_result/{name}").Handler(&DBResultDelete{Base: b})

	r.Methods("GET").Path("/{db}/_design/{docid}").Handler(&DBDocGet{Base: b, Design: true})
	r.Methods("PUT").Path("/{db}/_design/{docid}").Handler(&DBDocPut{Base: b, Design: true})
	r.Methods("DELETE").Path("/{db}/_design/{docid}").Handler(&DBDocDelete{Base: b, Design: true})

	r.Methods("GET").Path("/{db}/{docid}").Handler(&DBDocGet{Base: b})
	r.Methods("PUT").Path("/{db}/{docid}").Handler(&DBDocPut{Base: b})
	r.Methods("DELETE").Path("/{db}/{docid}").Handler(&DBDocDelete{Base: b})
	r.Methods("POST").Path("/{db}/").Handler(&DBDocPost{Base: b})
	r.Methods("POST").Path("/{db}").Handler(&DBDocPost{Base: b})

	r.Methods("GET").Path("/{db}/").Handler(&DBIndex{Base: b})
	r.Methods("GET").Path("/{db}").Handler(&DBIndex{Base: b})
	r.Methods("PUT").Path("/{db}").Handler(&DBCreate{Base: b})
	r.Methods("DELETE").Path("/{db}").Handler(&DBDelete{Base: b})

	r.Methods("GET").Path("/").Handler(&Index{})

	return nil
}
