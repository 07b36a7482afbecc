package holdem

import (
	"chiproom-server/pkg/deck"
)

// PlayerSnapshot is a player's public view of one seat
type PlayerSnapshot struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Chips      int       `json:"chips"`
	CurrentBet int       `json:"currentBet"`
	Folded     bool      `json:"folded"`
	AllIn      bool      `json:"allIn"`
	Dealer     bool      `json:"dealer"`
	SmallBlind bool      `json:"smallBlind"`
	BigBlind   bool      `json:"bigBlind"`
	Turn       bool      `json:"turn"`
	HoleCards  deck.Hand `json:"holeCards,omitempty"`
}

// Snapshot is a view of the table for a single viewer. Hole cards are only
// included for the viewer's own seat; hands shown at showdown arrive
// through the Result reveals.
type Snapshot struct {
	State      State             `json:"state"`
	Pot        int               `json:"pot"`
	CurrentBet int               `json:"currentBet"`
	MinRaise   int               `json:"minRaise"`
	Community  deck.Hand         `json:"community"`
	Players    []*PlayerSnapshot `json:"players"`
	Result     *HandResult       `json:"result,omitempty"`
}

// GetSnapshot returns the table as seen by the given viewer. A viewer ID of
// zero yields a spectator view with no hole cards.
func (t *Table) GetSnapshot(viewerID int64) *Snapshot {
	inBettingRound := t.state.IsBettingRound()

	players := make([]*PlayerSnapshot, len(t.players))
	for i, p := range t.players {
		ps := &PlayerSnapshot{
			ID:         p.ID,
			Name:       p.Name,
			Chips:      p.chips,
			CurrentBet: p.currentBet,
			Folded:     p.folded,
			AllIn:      p.allIn,
			Dealer:     i == t.dealerIndex,
			SmallBlind: inBettingRound && i == t.smallBlindIndex,
			BigBlind:   inBettingRound && i == t.bigBlindIndex,
			Turn:       inBettingRound && i == t.currentIndex,
		}

		if p.ID == viewerID {
			ps.HoleCards = p.cards.Clone()
		}

		players[i] = ps
	}

	return &Snapshot{
		State:      t.state,
		Pot:        t.pot,
		CurrentBet: t.currentBet,
		MinRaise:   t.minRaise,
		Community:  t.community.Clone(),
		Players:    players,
		Result:     t.result,
	}
}
