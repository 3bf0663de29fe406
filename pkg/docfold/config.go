package docfold

import (
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/docfold/docfold/internal/adapter/mongodb"
	"github.com/docfold/docfold/internal/adapter/storage"
	"github.com/docfold/docfold/internal/controller"
	"github.com/docfold/docfold/internal/handler"
	"github.com/docfold/docfold/pkg/model"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

type Config struct {
	DataDir       string `env:"DATA_DIR" envDefault:"./data"`
	ListenAddress string `env:"LISTEN_ADDR" envDefault:":7070"`
	Admins        string `env:"ADMINS" envDefault:"admin:admin"`
	SessionKey    string `env:"SESSION_KEY"`
	MongoURL      string `env:"MONGODB_URL"`
	MongoDatabase string `env:"MONGODB_DATABASE"`
}

func NewConfig() (*Config, error) {
	cfg := new(Config)
	err := env.Parse(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

func (cfg *Config) ParseFlags() {
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for database files")
	flag.StringVar(&cfg.ListenAddress, "listen", cfg.ListenAddress, "http listen address")
	flag.StringVar(&cfg.MongoURL, "mongodb-url", cfg.MongoURL, "remote mongodb deployment (optional)")
	flag.Parse()
}

// BuildServer opens the storage and wires the http handler and the
// background task runner.
func (cfg *Config) BuildServer() (*Docfold, error) {
	err := os.MkdirAll(cfg.DataDir, 0755)
	if err != nil {
		return nil, err
	}

	s, err := storage.Open(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	admins, err := model.ParseAdmins(cfg.Admins)
	if err != nil {
		return nil, err
	}

	sessionKey := []byte(cfg.SessionKey)
	if len(sessionKey) == 0 {
		sessionKey = securecookie.GenerateRandomKey(32)
	}

	var runner *mongodb.Runner
	if cfg.MongoURL != "" {
		runner, err = mongodb.Open(mongodb.Config{
			URL:      cfg.MongoURL,
			Database: cfg.MongoDatabase,
		})
		if err != nil {
			return nil, err
		}
	}

	r := mux.NewRouter()
	err = handler.Router{
		Storage:      s,
		SessionStore: sessions.NewCookieStore(sessionKey),
		Admins:       admins,
		Mongo:        runner,
	}.Build(r)
	if err != nil {
		return nil, err
	}

	return &Docfold{
		Storage: s,
		Tasks:   controller.Task{Storage: s},
		Handler: r,
	}, nil
}
