package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"chiproom-server/internal/config"
	"chiproom-server/internal/mux"
	"chiproom-server/pkg/db"
	"chiproom-server/pkg/ledger"
	"chiproom-server/pkg/room"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address (overrides the configuration)")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()

	store, err := ledgerStore(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not create ledger store")
	}

	chips, err := ledger.New(logrus.StandardLogger(), store)
	if err != nil {
		logrus.WithError(err).Fatal("could not load ledger")
	}

	turnTimeout := time.Duration(cfg.Poker.TurnTimeoutSeconds) * time.Second
	registry := room.NewRegistry(logrus.StandardLogger(), chips, turnTimeout)

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "X-Admin-Key"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	bindAddress := cfg.BindAddress
	if *addr != "" {
		bindAddress = *addr
	}

	srv := &http.Server{
		Addr:         bindAddress,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, cfg.AdminKey, chips, registry))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// ledgerStore builds the configured persistence backend. The postgres
// backend runs the migrations before first use.
func ledgerStore(cfg config.Config) (ledger.Store, error) {
	switch cfg.Ledger.Backend {
	case "postgres":
		db.Migrate()
		return ledger.NewPGStore(), nil
	case "file", "":
		return ledger.NewFileStore(cfg.Ledger.Path), nil
	}

	return nil, fmt.Errorf("unknown ledger backend: %s", cfg.Ledger.Backend)
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
