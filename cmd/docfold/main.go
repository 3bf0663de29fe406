package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/docfold/docfold/pkg/docfold"
	"github.com/gorilla/handlers"
)

func main() {
	cfg, err := docfold.NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	cfg.ParseFlags()

	d, err := cfg.BuildServer()
	if err != nil {
		log.Fatal(err)
	}
	defer d.Close()

	go d.Tasks.Run(context.Background())

	loggedRouter := handlers.LoggingHandler(os.Stdout, d.Handler)

	log.Printf("Listening on %s...", cfg.ListenAddress)
	err = http.ListenAndServe(cfg.ListenAddress, loggedRouter)
	if err != nil {
		log.Fatal(err)
	}
}
