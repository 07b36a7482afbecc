// Package mux wires the HTTP and websocket API to the casino core.
package mux

import (
	"net/http"
	"sync"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"chiproom-server/internal/rng"
	"chiproom-server/pkg/blackjack"
	"chiproom-server/pkg/ledger"
	"chiproom-server/pkg/room"
)

const uuidPattern = `{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}`

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	log      logrus.FieldLogger
	version  string
	adminKey string
	ledger   *ledger.Ledger
	registry *room.Registry
	rand     rng.Generator

	// one open blackjack round per player
	blackjackLock  sync.Mutex
	blackjackGames map[int64]*blackjack.Game

	// store for testing purposes
	adminRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version, adminKey string, chips *ledger.Ledger, registry *room.Registry) *Mux {
	this := &Mux{
		Router:         gmux.NewRouter(),
		log:            logrus.WithField("component", "mux"),
		version:        version,
		adminKey:       adminKey,
		ledger:         chips,
		registry:       registry,
		rand:           rng.Crypto{},
		blackjackGames: make(map[int64]*blackjack.Game),
	}

	this.adminRouter = this.Router.NewRoute().Subrouter()
	this.adminRouter.Use(this.adminMiddleware)

	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())

		r.Methods(http.MethodGet).Path("/account/{id:[0-9]+}").Handler(this.getAccountID())
		r.Methods(http.MethodPost).Path("/account/{id:[0-9]+}/loan").Handler(this.postAccountIDLoan())
		r.Methods(http.MethodPost).Path("/account/{id:[0-9]+}/repay").Handler(this.postAccountIDRepay())

		r.Methods(http.MethodGet).Path("/table").Handler(this.getTable())
		r.Methods(http.MethodPost).Path("/table").Handler(this.postTable())

		tr := r.PathPrefix("/table/" + uuidPattern).Subrouter()
		tr.Use(this.tableMiddleware)
		tr.Methods(http.MethodGet).Path("").Handler(this.getTableUUID())
		tr.Methods(http.MethodGet).Path("/ws").Handler(this.getTableUUIDWS())
		tr.Methods(http.MethodPost).Path("/join").Handler(this.postTableUUIDJoin())
		tr.Methods(http.MethodPost).Path("/leave").Handler(this.postTableUUIDLeave())
		tr.Methods(http.MethodPost).Path("/start").Handler(this.postTableUUIDStart())
		tr.Methods(http.MethodPost).Path("/act").Handler(this.postTableUUIDAct())

		r.Methods(http.MethodPost).Path("/slots").Handler(this.postSlots())
		r.Methods(http.MethodPost).Path("/roulette").Handler(this.postRoulette())
		r.Methods(http.MethodPost).Path("/blackjack").Handler(this.postBlackjack())
		r.Methods(http.MethodPost).Path("/blackjack/act").Handler(this.postBlackjackAct())
	}

	// requires the admin key
	{
		r := this.adminRouter
		r.Methods(http.MethodPost).Path("/admin/grant").Handler(this.postAdminGrant())
		r.Methods(http.MethodGet).Path("/admin/accounts").Handler(this.getAdminAccounts())
		r.Methods(http.MethodDelete).Path("/admin/table/" + uuidPattern).Handler(this.deleteAdminTableUUID())
	}

	return this
}

func (m *Mux) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.adminKey == "" || r.Header.Get("X-Admin-Key") != m.adminKey {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
