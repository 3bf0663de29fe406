package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/docfold/docfold/pkg/model"
)

const userDocPrefix = "org.docfold.user:"

type Authenticator struct {
	Base
	RequiresAdmin bool
}

// Authenticate checks the configured admins first, then the user
// documents of the _users database.
func (a Authenticator) Authenticate(ctx context.Context, username, password string) *model.Session {
	admin := a.Admins.Authenticate(username, password)
	if admin != nil {
		return admin.Session()
	}

	db, err := a.Storage.Database(ctx, "_users")
	if err != nil {
		return nil
	}
	doc, err := db.GetDocument(ctx, userDocPrefix+username)
	if err != nil || doc == nil {
		return nil
	}

	var u model.User
	err = u.FromDocument(doc)
	if err != nil {
		log.Println("failed to load user", err)
		return nil
	}
	ok, err := u.VerifyPassword(password)
	if err != nil || !ok {
		return nil
	}

	return u.Session()
}

func (a Authenticator) Auth(r *http.Request) (*model.Session, string) {
	var s model.Session
	var via string

	session, err := a.SessionStore.Get(r, sessionName)
	if err != nil {
		return nil, ""
	}

	if !session.IsNew {
		s.Restore(session.Values)
		via = "cookie"
	}

	if !s.Authenticated() {
		username, password, ok := r.BasicAuth()
		if ok {
			user := a.Authenticate(r.Context(), username, password)
			if user != nil {
				return user, "default"
			}
		}
	}

	return &s, via
}

func (a Authenticator) Do(w http.ResponseWriter, r *http.Request) (*model.Session, bool) {
	s, _ := a.Auth(r)
	if s == nil {
		WriteError(w, http.StatusBadRequest, "session is invalid")
		return nil, false
	}

	if !s.Authenticated() {
		WriteError(w, http.StatusUnauthorized, "You are not authorized to access this server.")
		return nil, false
	}

	if a.RequiresAdmin && !s.IsServerAdmin() {
		WriteError(w, http.StatusUnauthorized, "You are not a server admin.")
		return nil, false
	}

	return s, true
}
