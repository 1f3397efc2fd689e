// tudud is the dev todo store: the HTTP contract the tudu client
// expects, backed by a local sqlite file.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tudu/internal/server"
)

func main() {
	addr := flag.String("addr", ":8420", "listen address")
	dbPath := flag.String("db", "tudu.db", "sqlite database path")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tudud",
	})

	store, err := server.OpenStore(*dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "store:", err)
		os.Exit(1)
	}

	srv := server.New(store, logger)
	logger.Info("listening", "addr", *addr, "db", *dbPath)
	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
		fmt.Fprintln(os.Stderr, "serve:", err)
		os.Exit(1)
	}
}
