package mux

import (
	"context"
	"net/http"
	"strconv"

	gmux "github.com/gorilla/mux"

	"chiproom-server/pkg/ledger"
	"chiproom-server/pkg/poker/holdem"
	"chiproom-server/pkg/room"
)

type ctxKey int

const ctxTableKey ctxKey = iota

type tableResponse struct {
	UUID       string `json:"uuid"`
	Name       string `json:"name"`
	SmallBlind int    `json:"smallBlind"`
	BigBlind   int    `json:"bigBlind"`
}

func newTableResponse(t *room.Table) tableResponse {
	opts := t.Options()
	return tableResponse{
		UUID:       t.UUID,
		Name:       t.Name,
		SmallBlind: opts.SmallBlind,
		BigBlind:   opts.BigBlind,
	}
}

func (m *Mux) tableMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		table, err := m.registry.Table(gmux.Vars(r)["uuid"])
		if err != nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxTableKey, table)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func tableFromContext(r *http.Request) *room.Table {
	return r.Context().Value(ctxTableKey).(*room.Table)
}

func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tables := m.registry.Tables()
		payload := make([]tableResponse, len(tables))
		for i, t := range tables {
			payload[i] = newTableResponse(t)
		}

		writeJSON(w, http.StatusOK, payload)
	}
}

func (m *Mux) postTable() http.HandlerFunc {
	type request struct {
		Name       string `json:"name"`
		SmallBlind int    `json:"smallBlind"`
		BigBlind   int    `json:"bigBlind"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var payload request
		if !decodeRequest(w, r, &payload) {
			return
		}

		table, err := m.registry.CreateTable(payload.Name, holdem.Options{
			SmallBlind: payload.SmallBlind,
			BigBlind:   payload.BigBlind,
		})
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		writeJSON(w, http.StatusCreated, newTableResponse(table))
	}
}

func (m *Mux) getTableUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table := tableFromContext(r)

		viewerID := int64(0)
		if v := r.FormValue("playerId"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, err)
				return
			}

			viewerID = id
		}

		writeJSON(w, http.StatusOK, table.Snapshot(viewerID))
	}
}

func (m *Mux) postTableUUIDJoin() http.HandlerFunc {
	type request struct {
		PlayerID int64  `json:"playerId"`
		Name     string `json:"name"`
		BuyIn    int    `json:"buyIn"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var payload request
		if !decodeRequest(w, r, &payload) {
			return
		}

		table := tableFromContext(r)
		if err := table.Join(payload.PlayerID, payload.Name, payload.BuyIn); err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, table.Snapshot(payload.PlayerID))
	}
}

func (m *Mux) postTableUUIDLeave() http.HandlerFunc {
	type request struct {
		PlayerID int64 `json:"playerId"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var payload request
		if !decodeRequest(w, r, &payload) {
			return
		}

		table := tableFromContext(r)
		if err := table.Leave(payload.PlayerID); err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, table.Snapshot(0))
	}
}

func (m *Mux) postTableUUIDStart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table := tableFromContext(r)
		if err := table.StartHand(); err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, table.Snapshot(0))
	}
}

func (m *Mux) postTableUUIDAct() http.HandlerFunc {
	type request struct {
		PlayerID int64  `json:"playerId"`
		Action   string `json:"action"`
		Amount   int    `json:"amount"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var payload request
		if !decodeRequest(w, r, &payload) {
			return
		}

		action, err := holdem.ActionFromString(payload.Action)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		table := tableFromContext(r)
		if err := table.Act(payload.PlayerID, action, payload.Amount); err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, table.Snapshot(payload.PlayerID))
	}
}

func (m *Mux) deleteAdminTableUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.registry.RemoveTable(gmux.Vars(r)["uuid"]); err != nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// writeGameError maps gameplay failures onto HTTP status codes. Everything
// a player can correct is a 400.
func writeGameError(w http.ResponseWriter, err error) {
	switch err.(type) {
	case holdem.ActionError:
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}

	switch err {
	case holdem.ErrTableFull,
		holdem.ErrAlreadySeated,
		holdem.ErrHandInProgress,
		holdem.ErrNoHandInProgress,
		holdem.ErrNotEnoughPlayers,
		ledger.ErrInsufficientFunds,
		ledger.ErrInvalidAmount:
		writeJSONError(w, http.StatusBadRequest, err)
	case holdem.ErrPlayerNotFound:
		writeJSONError(w, http.StatusNotFound, err)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}
