package mux

import (
	"net/http"

	"chiproom-server/pkg/ledger"
)

type accountResponse struct {
	ID    int64 `json:"id"`
	Chips int   `json:"chips"`
	Loan  int   `json:"loan"`
}

func (m *Mux) getAccountID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)

		chips, err := m.ledger.Balance(id)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		loan, err := m.ledger.Loan(id)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, accountResponse{ID: id, Chips: chips, Loan: loan})
	}
}

func (m *Mux) postAccountIDLoan() http.HandlerFunc {
	type request struct {
		Amount int `json:"amount"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var payload request
		if !decodeRequest(w, r, &payload) {
			return
		}

		id := pathID(r)
		if err := m.ledger.GrantLoan(id, payload.Amount); err != nil {
			writeLedgerError(w, err)
			return
		}

		m.writeAccount(w, id)
	}
}

func (m *Mux) postAccountIDRepay() http.HandlerFunc {
	type request struct {
		Amount int `json:"amount"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var payload request
		if !decodeRequest(w, r, &payload) {
			return
		}

		id := pathID(r)
		if _, err := m.ledger.RepayLoan(id, payload.Amount); err != nil {
			writeLedgerError(w, err)
			return
		}

		m.writeAccount(w, id)
	}
}

func (m *Mux) postAdminGrant() http.HandlerFunc {
	type request struct {
		AccountID int64 `json:"accountId"`
		Amount    int   `json:"amount"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var payload request
		if !decodeRequest(w, r, &payload) {
			return
		}

		if err := m.ledger.Grant(payload.AccountID, payload.Amount); err != nil {
			writeLedgerError(w, err)
			return
		}

		m.writeAccount(w, payload.AccountID)
	}
}

func (m *Mux) getAdminAccounts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.ledger.Accounts())
	}
}

// writeAccount responds with an account's current state
func (m *Mux) writeAccount(w http.ResponseWriter, id int64) {
	chips, err := m.ledger.Balance(id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	loan, err := m.ledger.Loan(id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, accountResponse{ID: id, Chips: chips, Loan: loan})
}

// writeLedgerError maps ledger failures onto HTTP status codes
func writeLedgerError(w http.ResponseWriter, err error) {
	switch err {
	case ledger.ErrInsufficientFunds,
		ledger.ErrInvalidAmount,
		ledger.ErrLoanOutstanding,
		ledger.ErrLoanTooLarge,
		ledger.ErrNoLoan:
		writeJSONError(w, http.StatusBadRequest, err)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}
