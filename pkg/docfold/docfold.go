// Package docfold assembles the document store: bolt backed
// databases, the map-reduce task runner and the http api.
package docfold

import (
	"net/http"

	"github.com/docfold/docfold/internal/adapter/storage"
	"github.com/docfold/docfold/internal/controller"
)

type Docfold struct {
	Storage *storage.Storage
	Tasks   controller.Task
	Handler http.Handler
}

func (d *Docfold) Close() error {
	return d.Storage.Close()
}
