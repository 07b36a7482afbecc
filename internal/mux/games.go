package mux

import (
	"errors"
	"net/http"

	"chiproom-server/pkg/blackjack"
	"chiproom-server/pkg/ledger"
	"chiproom-server/pkg/roulette"
	"chiproom-server/pkg/slots"
)

// postSlots plays one pull against the house pool
func (m *Mux) postSlots() http.HandlerFunc {
	type request struct {
		PlayerID int64 `json:"playerId"`
		Amount   int   `json:"amount"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var payload request
		if !decodeRequest(w, r, &payload) {
			return
		}

		if err := m.ledger.Transfer(payload.PlayerID, ledger.PoolAccountID, payload.Amount); err != nil {
			writeLedgerError(w, err)
			return
		}

		result, err := slots.Spin(m.rand, payload.Amount)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		if result.Payout > 0 {
			if err := m.ledger.Transfer(ledger.PoolAccountID, payload.PlayerID, result.Payout); err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}
		}

		writeJSON(w, http.StatusOK, result)
	}
}

type rouletteResponse struct {
	Pocket int            `json:"pocket"`
	Color  roulette.Color `json:"color"`
	Payout int            `json:"payout"`
}

// postRoulette spins the wheel for a single bet against the house pool
func (m *Mux) postRoulette() http.HandlerFunc {
	type request struct {
		PlayerID int64  `json:"playerId"`
		Amount   int    `json:"amount"`
		Number   *int   `json:"number,omitempty"`
		Color    string `json:"color,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var payload request
		if !decodeRequest(w, r, &payload) {
			return
		}

		var bet *roulette.Bet
		var err error
		switch {
		case payload.Number != nil:
			bet, err = roulette.NewStraightBet(payload.Amount, *payload.Number)
		case payload.Color != "":
			var color roulette.Color
			if color, err = roulette.ColorFromString(payload.Color); err == nil {
				bet, err = roulette.NewColorBet(payload.Amount, color)
			}
		default:
			err = errors.New("must bet on a number or a color")
		}

		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		if err := m.ledger.Transfer(payload.PlayerID, ledger.PoolAccountID, bet.Amount); err != nil {
			writeLedgerError(w, err)
			return
		}

		pocket := roulette.Spin(m.rand)
		payout := bet.Payout(pocket)
		if payout > 0 {
			if err := m.ledger.Transfer(ledger.PoolAccountID, payload.PlayerID, payout); err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}
		}

		writeJSON(w, http.StatusOK, rouletteResponse{
			Pocket: pocket,
			Color:  roulette.ColorOf(pocket),
			Payout: payout,
		})
	}
}

type blackjackResponse struct {
	Dealer  interface{}         `json:"dealer"`
	Hands   []*blackjack.Hand   `json:"hands"`
	Over    bool                `json:"over"`
	Results []*blackjack.Result `json:"results,omitempty"`
}

func (m *Mux) newBlackjackResponse(g *blackjack.Game) blackjackResponse {
	return blackjackResponse{
		Dealer:  g.Dealer(),
		Hands:   g.Hands(),
		Over:    g.Over(),
		Results: g.Results(),
	}
}

// postBlackjack deals a new round, collecting the stake up front
func (m *Mux) postBlackjack() http.HandlerFunc {
	type request struct {
		PlayerID int64 `json:"playerId"`
		Amount   int   `json:"amount"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var payload request
		if !decodeRequest(w, r, &payload) {
			return
		}

		m.blackjackLock.Lock()
		defer m.blackjackLock.Unlock()

		if g, ok := m.blackjackGames[payload.PlayerID]; ok && !g.Over() {
			writeJSONError(w, http.StatusBadRequest, errors.New("a round is already in progress"))
			return
		}

		if err := m.ledger.Transfer(payload.PlayerID, ledger.PoolAccountID, payload.Amount); err != nil {
			writeLedgerError(w, err)
			return
		}

		game, err := blackjack.NewGame(payload.Amount, 0)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		m.blackjackGames[payload.PlayerID] = game
		if game.Over() {
			m.settleBlackjack(payload.PlayerID, game)
		}

		writeJSON(w, http.StatusOK, m.newBlackjackResponse(game))
	}
}

// postBlackjackAct applies hit, stand, double, or split to the player's
// open round. Double and split collect an additional stake first.
func (m *Mux) postBlackjackAct() http.HandlerFunc {
	type request struct {
		PlayerID int64  `json:"playerId"`
		Action   string `json:"action"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var payload request
		if !decodeRequest(w, r, &payload) {
			return
		}

		m.blackjackLock.Lock()
		defer m.blackjackLock.Unlock()

		game, ok := m.blackjackGames[payload.PlayerID]
		if !ok || game.Over() {
			writeJSONError(w, http.StatusBadRequest, errors.New("no round in progress"))
			return
		}

		var err error
		switch payload.Action {
		case "hit":
			err = game.Hit()
		case "stand":
			err = game.Stand()
		case "double", "split":
			err = m.stakedBlackjackAction(game, payload.PlayerID, payload.Action)
		default:
			writeJSONError(w, http.StatusBadRequest, errors.New("action must be hit, stand, double, or split"))
			return
		}

		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		if game.Over() {
			m.settleBlackjack(payload.PlayerID, game)
		}

		writeJSON(w, http.StatusOK, m.newBlackjackResponse(game))
	}
}

// stakedBlackjackAction collects the extra stake for double or split and
// refunds it if the action is rejected
func (m *Mux) stakedBlackjackAction(game *blackjack.Game, playerID int64, action string) error {
	hand := game.CurrentHand()
	if hand == nil {
		return blackjack.ErrRoundOver
	}

	stake := hand.Bet
	if err := m.ledger.Transfer(playerID, ledger.PoolAccountID, stake); err != nil {
		return err
	}

	var err error
	if action == "double" {
		err = game.Double()
	} else {
		err = game.Split()
	}

	if err != nil {
		if rerr := m.ledger.Transfer(ledger.PoolAccountID, playerID, stake); rerr != nil {
			m.log.WithError(rerr).WithField("player", playerID).Error("stake refund failed")
		}

		return err
	}

	return nil
}

// settleBlackjack pays out a finished round from the pool
func (m *Mux) settleBlackjack(playerID int64, game *blackjack.Game) {
	for _, result := range game.Results() {
		if result.Payout > 0 {
			if err := m.ledger.Transfer(ledger.PoolAccountID, playerID, result.Payout); err != nil {
				m.log.WithError(err).WithField("player", playerID).Error("blackjack payout failed")
			}
		}
	}
}
