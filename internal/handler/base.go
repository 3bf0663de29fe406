package handler

import (
	"github.com/docfold/docfold/internal/adapter/mongodb"
	"github.com/docfold/docfold/internal/adapter/storage"
	"github.com/docfold/docfold/pkg/model"

	"github.com/gorilla/sessions"
)

type Base struct {
	Storage      *storage.Storage
	SessionStore sessions.Store
	Admins       model.AdminUsers

	// Mongo is nil unless a remote deployment is configured.
	Mongo *mongodb.Runner
}
